// Package metrics exports HTTP and MongoDB connection metrics through a
// private Prometheus registry.
//
//	m := metrics.New("courseapi")
//	r.Use(m.Middleware)
//	r.Method(http.MethodGet, "/metrics", m.Handler())
//	sup := mongo.NewSupervisor(cfg, mongo.WithAttemptHook(m.ObserveConnectAttempt))
package metrics
