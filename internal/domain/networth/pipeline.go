package networth

import (
	"context"
	"fmt"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
	"github.com/skyforge/networth/pkg/logger"
)

// CategoryLookup resolves an item id to its repo category (e.g. "ACCESSORY").
type CategoryLookup interface {
	Category(skyblockID string) (string, bool)
}

// CategoryMap is a CategoryLookup over a static map.
type CategoryMap map[string]string

// Category implements CategoryLookup.
func (m CategoryMap) Category(skyblockID string) (string, bool) {
	c, ok := m[skyblockID]
	return c, ok && c != ""
}

// Observer is notified as handlers run. Implementations must be safe for
// concurrent use when a pipeline is shared between goroutines.
type Observer interface {
	HandlerApplied(name string, c Contribution)
	HandlerRecovered(name string, recovered any)
}

// Result is the aggregated outcome of one valuation.
type Result struct {
	SkyblockID    string              `json:"skyblockId"`
	Count         int                 `json:"count"`
	BasePrice     float64             `json:"basePrice"`
	Price         float64             `json:"price"`
	CosmeticValue float64             `json:"cosmeticValue"`
	BaseSource    string              `json:"baseSource,omitempty"`
	Calculation   []model.Calculation `json:"calculation"`
}

// TotalPrice is Price multiplied by the stack size.
func (r Result) TotalPrice() float64 {
	if r.Count < 1 {
		return r.Price
	}
	return r.Price * float64(r.Count)
}

// NonCosmeticPrice is Price without the entries flagged cosmetic.
func (r Result) NonCosmeticPrice() float64 {
	return r.Price - r.CosmeticValue
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithHandlers replaces the default handler chain. Order is preserved.
func WithHandlers(handlers ...Handler) Option {
	return func(p *Pipeline) {
		if len(handlers) > 0 {
			p.handlers = handlers
		}
	}
}

// WithCategoryLookup sets the repo category lookup used by recombobulator
// eligibility.
func WithCategoryLookup(lookup CategoryLookup) Option {
	return func(p *Pipeline) {
		if lookup != nil {
			p.categories = lookup
		}
	}
}

// WithObserver sets a handler observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithLogger sets the logger used to report recovered handler failures.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline runs an ordered handler chain exactly once per item. A Pipeline
// holds no per-item state and may be shared across goroutines.
type Pipeline struct {
	handlers   []Handler
	categories CategoryLookup
	observer   Observer
	logger     logger.Logger
}

// New creates a pipeline with the default handler chain.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{categories: CategoryMap(nil)}
	for _, opt := range opts {
		opt(p)
	}
	if p.handlers == nil {
		p.handlers = DefaultHandlers(p.categories)
	}
	return p
}

// Handlers returns the handler names in execution order.
func (p *Pipeline) Handlers() []string {
	names := make([]string, len(p.handlers))
	for i, h := range p.handlers {
		names[i] = h.Name()
	}
	return names
}

// Run values item against prices. It never fails: handlers that do not
// apply, lack prices or misbehave contribute nothing.
func (p *Pipeline) Run(item *model.Item, prices catalog.Prices) Result {
	if item == nil {
		item = &model.Item{}
	}
	if prices == nil {
		prices = catalog.Empty
	}

	acc := newAccumulator(item, prices)
	for _, h := range p.handlers {
		if !acc.Sealed() && !isBaseOverrider(h) {
			acc.seal()
		}
		p.runHandler(h, item, acc, prices)
	}
	acc.seal()

	res := Result{
		SkyblockID:  item.SkyblockID,
		Count:       item.Count,
		BasePrice:   acc.BasePrice,
		Price:       acc.Price,
		BaseSource:  acc.BaseSource,
		Calculation: acc.Calculation,
	}
	for _, c := range acc.Calculation {
		if c.IsCosmetic {
			res.CosmeticValue += c.Value
		}
	}
	return res
}

// runHandler executes one handler. A panic rolls back the entries the
// handler recorded and restores the accumulator to its prior state.
func (p *Pipeline) runHandler(h Handler, item *model.Item, acc *Accumulator, prices catalog.Prices) {
	mark := len(acc.Calculation)
	base, price, source := acc.BasePrice, acc.Price, acc.BaseSource

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		acc.Calculation = acc.Calculation[:mark]
		acc.BasePrice, acc.Price, acc.BaseSource = base, price, source
		if p.observer != nil {
			p.observer.HandlerRecovered(h.Name(), r)
		}
		if p.logger != nil {
			p.logger.Warn(context.Background(), "handler recovered",
				logger.String("handler", h.Name()),
				logger.String("item", item.SkyblockID),
				logger.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	if !h.Applies(item) {
		return
	}
	c := h.Calculate(item, acc, prices)
	if !finite(c.Value) {
		acc.Calculation = acc.Calculation[:mark]
		acc.BasePrice, acc.Price, acc.BaseSource = base, price, source
		return
	}
	acc.Price += c.Value
	if p.observer != nil && (c.Value != 0 || len(acc.Calculation) > mark) {
		p.observer.HandlerApplied(h.Name(), c)
	}
}

func isBaseOverrider(h Handler) bool {
	o, ok := h.(BaseOverrider)
	return ok && o.OverridesBase()
}

// Valuate values item with a default pipeline.
func Valuate(item *model.Item, prices catalog.Prices) Result {
	return defaultPipeline.Run(item, prices)
}

var defaultPipeline = New() //nolint:gochecknoglobals // stateless default chain
