package selection

const (
	// RouteLanding is the browse page the view falls back to.
	RouteLanding = "/"
	// RouteLogin is where unauthenticated cart and wishlist actions go.
	RouteLogin = "/login"
)

// Navigator performs navigation to a path.
type Navigator interface {
	Navigate(path string)
}

// Recorder is a Navigator that remembers the last requested path until it is
// taken. The HTTP layer turns the taken path into a redirect.
type Recorder struct {
	target string
	set    bool
}

func (r *Recorder) Navigate(path string) {
	r.target = path
	r.set = true
}

// Take returns the pending path, if any, and clears it.
func (r *Recorder) Take() (string, bool) {
	target, ok := r.target, r.set
	r.target, r.set = "", false
	return target, ok
}
