package licensing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/expiry"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
	"github.com/jhoicas/activos-ti/internal/vault"
	"github.com/jhoicas/activos-ti/pkg/metrics"
)

// LicensingUseCase gestiona el pool de puestos de una licencia y la relación
// licencia-producto. Invariante: 0 <= disponibles <= total; asignar solo
// procede mientras haya puestos, y quitar nunca sube el contador por encima
// del total. Ambas operaciones corren bajo bloqueo de fila de la licencia.
type LicensingUseCase struct {
	txRunner TxRunner
	licRepo  repository.LicenseRepository
	prodRepo repository.ProductRepository
	vault    *vault.Vault
}

// NewLicensingUseCase construye el caso de uso.
func NewLicensingUseCase(
	txRunner TxRunner,
	licRepo repository.LicenseRepository,
	prodRepo repository.ProductRepository,
	v *vault.Vault,
) *LicensingUseCase {
	return &LicensingUseCase{
		txRunner: txRunner,
		licRepo:  licRepo,
		prodRepo: prodRepo,
		vault:    v,
	}
}

// Assign asigna un puesto de la licencia al producto.
// Falla con domain.ErrDuplicateAssignment si ya existe una asignación activa
// del par, y con domain.ErrNoSeatsAvailable si no quedan puestos; en ambos
// casos el estado queda intacto. La creación de la asignación y el
// decremento del contador son una sola unidad atómica.
func (uc *LicensingUseCase) Assign(ctx context.Context, licenseID, productID, notes string) (*entity.LicenseAssignment, error) {
	if licenseID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.prodRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var asg *entity.LicenseAssignment
	err = uc.txRunner.RunLicensing(ctx, func(
		licRepo repository.LicenseRepository,
		asgRepo repository.LicenseAssignmentRepository,
	) error {
		lic, err := licRepo.GetByIDForUpdate(licenseID)
		if err != nil {
			return err
		}
		if lic == nil {
			return domain.ErrNotFound
		}
		if !lic.Active {
			return domain.ErrInvalidInput
		}
		existing, err := asgRepo.GetActive(licenseID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateAssignment
		}
		if lic.AvailableSeats <= 0 {
			return domain.ErrNoSeatsAvailable
		}

		asg = &entity.LicenseAssignment{
			ID:         uuid.New().String(),
			LicenseID:  licenseID,
			ProductID:  productID,
			Active:     true,
			Notes:      notes,
			AssignedAt: time.Now(),
		}
		if err := asgRepo.Create(asg); err != nil {
			return err
		}
		return licRepo.UpdateAvailableSeats(licenseID, lic.AvailableSeats-1)
	})
	if err != nil {
		return nil, err
	}

	metrics.LicenseAssignments.WithLabelValues("assign").Inc()
	return asg, nil
}

// Unassign desactiva la asignación activa del par (licencia, producto) y
// libera el puesto. El registro no se borra: queda inactivo como historial.
// El contador se acota al total por si hubo ajustes manuales del pool.
func (uc *LicensingUseCase) Unassign(ctx context.Context, licenseID, productID string) error {
	if licenseID == "" || productID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.RunLicensing(ctx, func(
		licRepo repository.LicenseRepository,
		asgRepo repository.LicenseAssignmentRepository,
	) error {
		lic, err := licRepo.GetByIDForUpdate(licenseID)
		if err != nil {
			return err
		}
		if lic == nil {
			return domain.ErrNotFound
		}
		asg, err := asgRepo.GetActive(licenseID, productID)
		if err != nil {
			return err
		}
		if asg == nil {
			return domain.ErrNotFound
		}
		if err := asgRepo.Deactivate(asg.ID, time.Now()); err != nil {
			return err
		}
		available := lic.AvailableSeats + 1
		if available > lic.TotalSeats {
			available = lic.TotalSeats
		}
		return licRepo.UpdateAvailableSeats(licenseID, available)
	})
	if err != nil {
		return err
	}

	metrics.LicenseAssignments.WithLabelValues("unassign").Inc()
	return nil
}

// SetKey cifra y guarda la clave de la licencia (dominio "license" del vault).
// Texto vacío borra la clave registrada.
func (uc *LicensingUseCase) SetKey(ctx context.Context, licenseID, plainKey string) error {
	if licenseID == "" {
		return domain.ErrInvalidInput
	}
	lic, err := uc.licRepo.GetByID(licenseID)
	if err != nil {
		return err
	}
	if lic == nil {
		return domain.ErrNotFound
	}
	ciphertext, err := uc.vault.Encrypt(plainKey, vault.DomainLicense)
	if err != nil {
		metrics.VaultFailures.Inc()
		return err
	}
	return uc.licRepo.UpdateEncryptedKey(licenseID, ciphertext)
}

// RevealKey descifra la clave de la licencia para mostrarla.
// Devuelve ("", nil) si no hay clave registrada; un ciphertext que no abre
// devuelve domain.ErrInvalidCiphertext en lugar de fingir un campo vacío.
func (uc *LicensingUseCase) RevealKey(ctx context.Context, licenseID string) (string, error) {
	lic, err := uc.licRepo.GetByID(licenseID)
	if err != nil {
		return "", err
	}
	if lic == nil {
		return "", domain.ErrNotFound
	}
	plain, err := uc.vault.Decrypt(lic.EncryptedKey, vault.DomainLicense)
	if err != nil {
		metrics.VaultFailures.Inc()
		return "", err
	}
	return plain, nil
}

// LicenseStatus licencia con su clasificación de vencimiento.
type LicenseStatus struct {
	License  *entity.License
	Expiry   expiry.Status
	DaysLeft *int // nil si no hay fecha de vencimiento
}

// GetStatus devuelve la licencia con su estado de vencimiento calculado.
func (uc *LicensingUseCase) GetStatus(ctx context.Context, licenseID string) (*LicenseStatus, error) {
	lic, err := uc.licRepo.GetByID(licenseID)
	if err != nil {
		return nil, err
	}
	if lic == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	st := &LicenseStatus{License: lic, Expiry: expiry.Classify(lic.ExpiresAt, now)}
	if lic.ExpiresAt != nil {
		days := expiry.DaysLeft(*lic.ExpiresAt, now)
		st.DaysLeft = &days
	}
	return st, nil
}
