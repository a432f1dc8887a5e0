package networth

// Application worth: the fraction of a consumable's market price recovered
// once it is applied to an item.
const (
	worthArtOfPeace          = 0.8
	worthArtOfWar            = 0.6
	worthBooster             = 0.8
	worthDivanPowderCoating  = 0.8
	worthDrillPart           = 1.0
	worthDye                 = 0.9
	worthEnchantments        = 0.85
	worthEnchantmentUpgrades = 0.8
	worthEnrichment          = 0.5
	worthEssence             = 0.75
	worthEtherwarp           = 1.0
	worthFarmingForDummies   = 0.5
	worthFumingPotatoBook    = 0.6
	worthGemstone            = 1.0
	worthGemstoneChambers    = 0.9
	worthGemstonePowerScroll = 0.5
	worthGemstoneSlots       = 0.6
	worthHotPotatoBook       = 1.0
	worthJalapenoBook        = 0.8
	worthManaDisintegrator   = 0.8
	worthMasterStar          = 1.0
	worthNecronBladeScroll   = 1.0
	worthPetCandy            = 0.65
	worthPetItem             = 1.0
	worthPocketSackInASack   = 0.7
	worthPolarvoid           = 1.0
	worthRecombobulator      = 0.8
	worthReforge             = 1.0
	worthRodPart             = 1.0
	worthRunes               = 0.6
	worthShensAuctionPrice   = 0.85
	worthSilex               = 0.75
	worthSoulboundPetSkins   = 0.8
	worthSoulboundSkins      = 0.8
	worthThunderInABottle    = 0.8
	worthTunedTransmission   = 0.7
	worthWoodSingularity     = 0.5
)

// Numeric limits of individual mechanics.
const (
	maxHotPotatoBooks      = 10
	maxMasterStars         = 5
	maxEssenceStars        = 5
	maxStarSchedule        = 5
	pickonimbusDurability  = 5000
	thunderChargePerUnit   = 50_000
	maxThunderCharge       = 5_000_000
	maxPetCandyReduction   = 5_000_000
	silexBaseAllowance     = 5
	silexStonkAllowance    = 6
	bookSingleEnchantWorth = 1.0
	boneBoomerangFactor    = 0.5
)

// masterStars is indexed by master star number minus one.
var masterStars = []string{ //nolint:gochecknoglobals // static table
	"FIRST_MASTER_STAR",
	"SECOND_MASTER_STAR",
	"THIRD_MASTER_STAR",
	"FOURTH_MASTER_STAR",
	"FIFTH_MASTER_STAR",
}

// midasThresholds maps a midas weapon to the paid price that unlocks its
// fixed catalog override.
var midasThresholds = map[string]struct { //nolint:gochecknoglobals // static table
	key       string
	threshold float64
}{
	"MIDAS_SWORD":         {key: "MIDAS_SWORD_50M", threshold: 50_000_000},
	"STARRED_MIDAS_SWORD": {key: "STARRED_MIDAS_SWORD_250M", threshold: 250_000_000},
	"MIDAS_STAFF":         {key: "MIDAS_STAFF_100M", threshold: 100_000_000},
	"STARRED_MIDAS_STAFF": {key: "STARRED_MIDAS_STAFF_500M", threshold: 500_000_000},
}

// prestigeTiers orders Kuudra armor prestiges from lowest to highest.
var prestigeTiers = []string{"", "HOT_", "BURNING_", "FIERY_", "INFERNAL_"} //nolint:gochecknoglobals // static table

var prestigeFamilies = []string{"CRIMSON", "AURORA", "TERROR", "FERVOR", "HOLLOW"} //nolint:gochecknoglobals // static table

var prestigePieces = []string{"HELMET", "CHESTPLATE", "LEGGINGS", "BOOTS"} //nolint:gochecknoglobals // static table

// prestiges maps a prestiged item to the lower tiers it was built from,
// nearest first.
var prestiges = buildPrestiges() //nolint:gochecknoglobals // static table

func buildPrestiges() map[string][]string {
	out := make(map[string][]string)
	for _, family := range prestigeFamilies {
		for _, piece := range prestigePieces {
			for i := 1; i < len(prestigeTiers); i++ {
				id := prestigeTiers[i] + family + "_" + piece
				chain := make([]string, 0, i)
				for j := i - 1; j >= 0; j-- {
					chain = append(chain, prestigeTiers[j]+family+"_"+piece)
				}
				out[id] = chain
			}
		}
	}
	return out
}

// reforgeStones maps a reforge modifier to the stone that applies it.
var reforgeStones = map[string]string{ //nolint:gochecknoglobals // static table
	"ambered":       "AMBER_MATERIAL",
	"ancient":       "PRECURSOR_GEAR",
	"auspicious":    "ROCK_GEMSTONE",
	"blessed":       "BLESSED_FRUIT",
	"blood_soaked":  "PRESUMED_GALLON_OF_RED_PAINT",
	"blooming":      "FLOWERING_BOUQUET",
	"bountiful":     "GOLDEN_BALL",
	"bustling":      "SKYMART_BROCHURE",
	"candied":       "CANDY_CORN",
	"chomp":         "KUUDRA_MANDIBLE",
	"coldfused":     "ENTROPY_SUPPRESSOR",
	"cubic":         "MOLTEN_CUBE",
	"dirty":         "DIRT_BOTTLE",
	"earthy":        "LARGE_WALNUT",
	"empowered":     "SADAN_BROOCH",
	"fabled":        "DRAGON_CLAW",
	"fanged":        "FULL_JAW_FANGING_KIT",
	"festive":       "FROZEN_BAUBLE",
	"fleet":         "DIAMONITE",
	"fortified":     "METEOR_SHARD",
	"fruitful":      "ONYX",
	"giant":         "GIANT_TOOTH",
	"gilded":        "MIDAS_JEWEL",
	"glistening":    "SHINY_PRISM",
	"greater_spook": "BOO_STONE",
	"headstrong":    "SALMON_OPAL",
	"heated":        "HOT_STUFF",
	"hyper":         "ENDSTONE_GEODE",
	"jaded":         "JADERALD",
	"jerry":         "JERRY_STONE",
	"loving":        "RED_SCARF",
	"lucky":         "LUCKY_DICE",
	"magnetic":      "LAPIS_CRYSTAL",
	"mithraic":      "PURE_MITHRIL",
	"moil":          "MOIL_LOG",
	"mossy":         "OVERGROWN_GRASS",
	"necrotic":      "NECROMANCER_BROOCH",
	"perfect":       "DIAMOND_ATOM",
	"pitchin":       "PITCHIN_KOI",
	"precise":       "OPTICAL_LENS",
	"refined":       "REFINED_AMBER",
	"reinforced":    "RARE_DIAMOND",
	"renowned":      "DRAGON_HORN",
	"ridiculous":    "RED_NOSE",
	"rooted":        "BURROWING_SPORES",
	"salty":         "SALT_CUBE",
	"snowy":         "TERRY_SNOWGLOBE",
	"spiked":        "DRAGON_SCALE",
	"spiritual":     "SPIRIT_DECOY",
	"stellar":       "PETRIFIED_STARFALL",
	"stiff":         "HARDENED_WOOD",
	"strengthened":  "SEARING_STONE",
	"submerged":     "DEEP_SEA_ORB",
	"toil":          "TOIL_LOG",
	"trashy":        "OVERFLOWING_TRASH_CAN",
	"treacherous":   "RUSTY_ANCHOR",
	"undead":        "PREMIUM_FLESH",
	"warped":        "AOTE_STONE",
	"waxed":         "BLAZE_WAX",
	"withered":      "WITHER_BLOOD",
}

// blockedEnchantments lists enchantments an item carries innately.
var blockedEnchantments = map[string][]string{ //nolint:gochecknoglobals // static table
	"BONE_BOOMERANG":         {"overload", "power", "ultimate_soul_eater"},
	"DEATH_BOW":              {"overload", "power", "ultimate_soul_eater"},
	"GARDENING_AXE":          {"replenish"},
	"GARDENING_HOE":          {"replenish"},
	"ADVANCED_GARDENING_AXE": {"replenish"},
	"ADVANCED_GARDENING_HOE": {"replenish"},
}

// ignoredEnchantments lists enchant levels that come free with the item.
var ignoredEnchantments = map[string]int{ //nolint:gochecknoglobals // static table
	"scavenger": 5,
}

// stackingEnchantments level up through use; only the base book is bought.
var stackingEnchantments = map[string]bool{ //nolint:gochecknoglobals // static table
	"expertise":   true,
	"compact":     true,
	"cultivating": true,
	"champion":    true,
	"hecatomb":    true,
	"toxophilite": true,
}

// ignoreSilex lists items whose efficiency is innate.
var ignoreSilex = map[string]bool{ //nolint:gochecknoglobals // static table
	"PROMISING_SPADE": true,
}

// enchantmentUpgrades maps (enchant, level) to the item consumed to reach it.
var enchantmentUpgrades = map[string]map[int]string{ //nolint:gochecknoglobals // static table
	"scavenger":       {6: "GOLDEN_BOUNTY"},
	"pesterminator":   {6: "PESTHUNTING_GUIDE"},
	"luck_of_the_sea": {7: "GOLD_BOTTLE_CAP"},
	"piscary":         {7: "TROUBLED_BUBBLE"},
	"frail":           {7: "SEVERED_PINCER"},
	"spiked_hook":     {7: "OCTOPUS_TENDRIL"},
	"charm":           {6: "CHAIN_END_TIMES"},
	"bobbin_time":     {5: "ENCHANTED_BOBBIN"},
}

// enrichments are the talisman enrichment catalog keys.
var enrichments = []string{ //nolint:gochecknoglobals // static table
	"TALISMAN_ENRICHMENT_ATTACK_SPEED",
	"TALISMAN_ENRICHMENT_CRITICAL_CHANCE",
	"TALISMAN_ENRICHMENT_CRITICAL_DAMAGE",
	"TALISMAN_ENRICHMENT_DEFENSE",
	"TALISMAN_ENRICHMENT_FEROCITY",
	"TALISMAN_ENRICHMENT_HEALTH",
	"TALISMAN_ENRICHMENT_INTELLIGENCE",
	"TALISMAN_ENRICHMENT_MAGIC_FIND",
	"TALISMAN_ENRICHMENT_SEA_CREATURE_CHANCE",
	"TALISMAN_ENRICHMENT_STRENGTH",
	"TALISMAN_ENRICHMENT_WALK_SPEED",
}

// blockedCandyReducePets keep their value regardless of candy used.
var blockedCandyReducePets = map[string]bool{ //nolint:gochecknoglobals // static table
	"ENDER_DRAGON":  true,
	"GOLDEN_DRAGON": true,
	"SCATHA":        true,
}

// recombobulatedCategories may be recombobulated without enchantments.
var recombobulatedCategories = map[string]bool{ //nolint:gochecknoglobals // static table
	"ACCESSORY": true,
	"NECKLACE":  true,
	"GLOVES":    true,
	"BRACELET":  true,
	"BELT":      true,
	"CLOAK":     true,
	"VACUUM":    true,
}

// recombobulatedIDs may be recombobulated without enchantments.
var recombobulatedIDs = map[string]bool{ //nolint:gochecknoglobals // static table
	"DIVAN_HELMET":                  true,
	"DIVAN_CHESTPLATE":              true,
	"DIVAN_LEGGINGS":                true,
	"DIVAN_BOOTS":                   true,
	"FERMENTO_HELMET":               true,
	"FERMENTO_CHESTPLATE":           true,
	"FERMENTO_LEGGINGS":             true,
	"FERMENTO_BOOTS":                true,
	"SHADOW_ASSASSIN_CLOAK":         true,
	"STARRED_SHADOW_ASSASSIN_CLOAK": true,
}

// Item ids with special handling.
const (
	idEnchantedBook  = "ENCHANTED_BOOK"
	idNewYearCake    = "NEW_YEAR_CAKE"
	idPickonimbus    = "PICKONIMBUS"
	idPulseRing      = "PULSE_RING"
	idBoneBoomerang  = "BONE_BOOMERANG"
	idStonkPickaxe   = "STONK_PICKAXE"
	idRune           = "RUNE"
	idUniqueRune     = "UNIQUE_RUNE"
	idRecombobulator = "RECOMBOBULATOR_3000"
	idSilex          = "SIL_EX"
	idThunderBottle  = "THUNDER_IN_A_BOTTLE"
	idHotPotatoBook  = "HOT_POTATO_BOOK"
	idFumingPotato   = "FUMING_POTATO_BOOK"
	idCandy          = "PET_CANDY"
	divanPrefix      = "DIVAN_"
)
