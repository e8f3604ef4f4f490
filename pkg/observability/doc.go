/*
Package observability exports run metrics for the simulator.

Metrics are collected through domain.LifecycleHooks so the engine stays unaware of Prometheus:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng, err := turing.Load(ctx, loader, "swap", turing.WithLifecycleHooks(metrics.Hooks("swap")))
*/
package observability
