package httpkit

import "taxkaki/internal/platform/net/middleware"

// Protected groups routes under bearer auth
// a nil port mounts the routes open, which is how the API runs without a session secret
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		if p != nil {
			gr.Use(Auth(p))
		}
		fn(gr)
	})
}
