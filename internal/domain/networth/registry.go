package networth

// DefaultHandlers returns the handler chain in execution order. Base
// overrides come first; the remaining order is fixed because later handlers
// read the running price (pickonimbus) or the base price (pet candy).
func DefaultHandlers(categories CategoryLookup) []Handler {
	handlers := []Handler{
		prestigeHandler{},
		midasHandler{},
		newYearCakeHandler{},
		shensAuctionHandler{},

		reforgeHandler{},
		runeHandler{},
		enchantedBookHandler{},
		enchantmentsHandler{},
		gemstonesHandler{},
		masterStarsHandler{},
		essenceStarsHandler{},
	}

	handlers = append(handlers, applicationHandlers()...)
	handlers = append(handlers,
		drillPartsHandler{},
		rodPartsHandler{},
		dyeHandler{},
		enrichmentHandler{},
		boostersHandler{},
		gemstonePowerScrollHandler{},
		necronBladeScrollsHandler{},
		potatoBooksHandler{},
		pickonimbusHandler{},
		pulseRingHandler{},

		itemSkinHandler{},
		soulboundSkinHandler{},
		soulboundPetSkinHandler{},

		petItemHandler{},
		petCandyHandler{},

		recombobulatorHandler{categories: categories},
	)
	return handlers
}
