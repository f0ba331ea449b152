// Package metrics contadores Prometheus de la aplicación.
// Se exponen en /metrics vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsApplied movimientos de inventario aplicados, por tipo.
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activos",
		Name:      "movements_applied_total",
		Help:      "Movimientos de inventario aplicados correctamente.",
	}, []string{"type"})

	// LicenseAssignments operaciones sobre asignaciones de licencias.
	LicenseAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activos",
		Name:      "license_assignments_total",
		Help:      "Asignaciones y desasignaciones de licencias.",
	}, []string{"action"})

	// VaultFailures fallos criptográficos del vault (cifrado o descifrado).
	VaultFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "activos",
		Name:      "vault_failures_total",
		Help:      "Operaciones del vault que terminaron en error criptográfico.",
	})
)
