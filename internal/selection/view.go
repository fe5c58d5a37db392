package selection

import (
	"context"

	"go.uber.org/zap"

	"product-details/internal/domain"
)

// Authenticator reports whether the caller behind ctx is signed in.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Collaborator receives products the user sent to the cart or the wishlist.
type Collaborator interface {
	Record(ctx context.Context, p domain.Product) error
}

// View holds the working selection mirrored from a SourceList and the actions
// a user can take on it. It is not safe for concurrent use; callers serialize
// events per view.
type View struct {
	source    *SourceList
	observed  []domain.Product
	selection []domain.Product

	nav      Navigator
	auth     Authenticator
	cart     Collaborator
	wishlist Collaborator
	logger   *zap.Logger
}

// Option customizes a View.
type Option func(*View)

// WithLogger sets the logger used for collaborator failures.
func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New builds a view bound to source and syncs it with the current value.
func New(source *SourceList, nav Navigator, auth Authenticator, cart, wishlist Collaborator, opts ...Option) *View {
	v := &View{
		source:   source,
		nav:      nav,
		auth:     auth,
		cart:     cart,
		wishlist: wishlist,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	source.Subscribe(v.observe)
	return v
}

// observe runs on every source change. An empty source never resets the
// selection.
func (v *View) observe(products []domain.Product) {
	v.observed = products
	if len(products) > 0 {
		v.selection = clone(products)
	}
}

// Selection returns a copy of the working selection in display order.
func (v *View) Selection() []domain.Product {
	return clone(v.selection)
}

// Len reports the number of selected products.
func (v *View) Len() int {
	return len(v.selection)
}

// Find looks up a selected product by id.
func (v *View) Find(id string) (domain.Product, bool) {
	for _, p := range v.selection {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// RemoveProduct drops id from the selection and from the parent's list. The
// landing redirect fires when the selection held at most one product before
// the removal.
func (v *View) RemoveProduct(id string) {
	before := len(v.selection)
	v.selection = without(v.selection, id)
	v.source.Set(without(v.observed, id))
	if before <= 1 {
		v.nav.Navigate(RouteLanding)
	}
}

// ClearAll empties the selection and the parent's list and returns to landing.
func (v *View) ClearAll() {
	v.selection = nil
	v.source.Set(nil)
	v.nav.Navigate(RouteLanding)
}

// AddToCart notifies the cart collaborator, or redirects to login.
func (v *View) AddToCart(ctx context.Context, p domain.Product) {
	v.guarded(ctx, "cart", v.cart, p)
}

// AddToWishlist notifies the wishlist collaborator, or redirects to login.
func (v *View) AddToWishlist(ctx context.Context, p domain.Product) {
	v.guarded(ctx, "wishlist", v.wishlist, p)
}

func (v *View) guarded(ctx context.Context, kind string, c Collaborator, p domain.Product) {
	if v.auth == nil || !v.auth.IsAuthenticated(ctx) {
		v.nav.Navigate(RouteLogin)
		return
	}
	if c == nil {
		return
	}
	if err := c.Record(ctx, p); err != nil {
		v.logger.Warn("collaborator failed",
			zap.String("kind", kind),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
}
