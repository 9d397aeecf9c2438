/*
Package observability exposes editor activity as Prometheus metrics.

Metrics are fed through domain.Hooks, so any host can attach them next to its
own callbacks:

	m := observability.NewMetrics(prometheus.NewRegistry())
	ed, err := arbor.New(doc, arbor.WithHooks(m.Hooks(hostHooks)))
*/
package observability
