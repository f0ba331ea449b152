package licensing

import (
	"context"

	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

// TxRunner ejecuta una función con los repositorios de licencias atados a
// una transacción. El check-then-decrement del contador de puestos se hace
// bajo bloqueo de fila dentro de esa transacción.
type TxRunner interface {
	RunLicensing(ctx context.Context, fn func(
		licRepo repository.LicenseRepository,
		asgRepo repository.LicenseAssignmentRepository,
	) error) error
}
