// Package accounts gestiona los secretos de cuentas y equipos a través del
// vault: la capa de persistencia solo ve texto cifrado opaco.
package accounts

import (
	"context"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
	"github.com/jhoicas/activos-ti/internal/vault"
	"github.com/jhoicas/activos-ti/pkg/metrics"
)

// AccountUseCase guarda y revela contraseñas de cuentas y equipos.
type AccountUseCase struct {
	accountRepo repository.AccountRepository
	deviceRepo  repository.DeviceRepository
	vault       *vault.Vault
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(
	accountRepo repository.AccountRepository,
	deviceRepo repository.DeviceRepository,
	v *vault.Vault,
) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo, deviceRepo: deviceRepo, vault: v}
}

// SetPassword cifra y guarda la contraseña de una cuenta (dominio "account").
// Contraseña vacía borra el secreto registrado.
func (uc *AccountUseCase) SetPassword(ctx context.Context, accountID, plaintext string) error {
	if accountID == "" {
		return domain.ErrInvalidInput
	}
	acct, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if acct == nil {
		return domain.ErrNotFound
	}
	ciphertext, err := uc.vault.Encrypt(plaintext, vault.DomainAccount)
	if err != nil {
		metrics.VaultFailures.Inc()
		return err
	}
	return uc.accountRepo.UpdateEncryptedPassword(accountID, ciphertext)
}

// RevealPassword descifra la contraseña de una cuenta para mostrarla.
// ("", nil) significa "sin contraseña registrada"; un ciphertext corrupto o
// cifrado bajo otra clave devuelve domain.ErrInvalidCiphertext.
func (uc *AccountUseCase) RevealPassword(ctx context.Context, accountID string) (string, error) {
	acct, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return "", err
	}
	if acct == nil {
		return "", domain.ErrNotFound
	}
	plain, err := uc.vault.Decrypt(acct.EncryptedPassword, vault.DomainAccount)
	if err != nil {
		metrics.VaultFailures.Inc()
		return "", err
	}
	return plain, nil
}

// SetDevicePassword cifra y guarda la credencial de un equipo (dominio "device").
func (uc *AccountUseCase) SetDevicePassword(ctx context.Context, deviceID, plaintext string) error {
	if deviceID == "" {
		return domain.ErrInvalidInput
	}
	dev, err := uc.deviceRepo.GetByID(deviceID)
	if err != nil {
		return err
	}
	if dev == nil {
		return domain.ErrNotFound
	}
	ciphertext, err := uc.vault.Encrypt(plaintext, vault.DomainDevice)
	if err != nil {
		metrics.VaultFailures.Inc()
		return err
	}
	return uc.deviceRepo.UpdateEncryptedPassword(deviceID, ciphertext)
}

// RevealDevicePassword descifra la credencial de un equipo.
func (uc *AccountUseCase) RevealDevicePassword(ctx context.Context, deviceID string) (string, error) {
	dev, err := uc.deviceRepo.GetByID(deviceID)
	if err != nil {
		return "", err
	}
	if dev == nil {
		return "", domain.ErrNotFound
	}
	plain, err := uc.vault.Decrypt(dev.EncryptedPassword, vault.DomainDevice)
	if err != nil {
		metrics.VaultFailures.Inc()
		return "", err
	}
	return plain, nil
}
