package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/vault"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestVault construye un vault con claves desechables por dominio y un
// fallback propio, para tests deterministas sin estado de proceso.
func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	licenseKey, err := vault.GenerateKey()
	require.NoError(t, err)
	accountKey, err := vault.GenerateKey()
	require.NoError(t, err)
	defaultKey, err := vault.GenerateKey()
	require.NoError(t, err)

	v, err := vault.New(vault.Config{
		Keys: map[string]string{
			vault.DomainLicense: licenseKey,
			vault.DomainAccount: accountKey,
		},
		DefaultKey: defaultKey,
	})
	require.NoError(t, err, "el vault debe construirse con claves válidas")
	return v
}

func TestVault_RoundTrip(t *testing.T) {
	v := newTestVault(t)

	// Textos unicode variados: el contrato es decrypt(encrypt(x, d), d) == x
	// para cualquier cadena no vacía.
	cases := []string{
		"XXXXX-XXXXX-XXXXX-XXXXX-12345",
		"contraseña con ñ y tildes áéíóú",
		"日本語のパスワード",
		"x",
		"línea1\nlínea2\ttab",
	}
	for _, plain := range cases {
		ct, err := v.Encrypt(plain, vault.DomainLicense)
		require.NoError(t, err)
		require.NotEmpty(t, ct, "texto no vacío debe producir ciphertext")
		assert.NotEqual(t, plain, ct, "el ciphertext no debe ser el texto plano")

		got, err := v.Decrypt(ct, vault.DomainLicense)
		require.NoError(t, err)
		assert.Equal(t, plain, got, "el round-trip debe devolver el texto original")
	}
}

func TestVault_EmptyPlaintextIsNoSecret(t *testing.T) {
	v := newTestVault(t)

	ct, err := v.Encrypt("", vault.DomainAccount)
	require.NoError(t, err, "texto vacío no es un error: es 'sin secreto'")
	assert.Empty(t, ct)

	plain, err := v.Decrypt("", vault.DomainAccount)
	require.NoError(t, err, "ciphertext vacío no es un error")
	assert.Empty(t, plain)
}

func TestVault_WrongDomainFails(t *testing.T) {
	v := newTestVault(t)

	ct, err := v.Encrypt("clave-secreta", vault.DomainLicense)
	require.NoError(t, err)

	// Mismo vault, dominio distinto: clave y AAD distintos, debe fallar con
	// el error tipado, nunca con panic ni con cadena vacía silenciosa.
	_, err = v.Decrypt(ct, vault.DomainAccount)
	assert.ErrorIs(t, err, domain.ErrInvalidCiphertext)
}

func TestVault_CorruptedCiphertextFails(t *testing.T) {
	v := newTestVault(t)

	ct, err := v.Encrypt("clave-secreta", vault.DomainLicense)
	require.NoError(t, err)

	for _, corrupted := range []string{
		"no-es-base64-%%%",
		"QQ==", // demasiado corto para contener un nonce
		ct[:len(ct)-8] + "AAAAAAA=",
	} {
		_, err := v.Decrypt(corrupted, vault.DomainLicense)
		assert.ErrorIs(t, err, domain.ErrInvalidCiphertext, "payload corrupto: %q", corrupted)
	}
}

func TestVault_DifferentKeyFails(t *testing.T) {
	v1 := newTestVault(t)
	v2 := newTestVault(t)

	ct, err := v1.Encrypt("secreto", vault.DomainLicense)
	require.NoError(t, err)

	// Simula rotación o pérdida de clave: otro vault con otra clave.
	_, err = v2.Decrypt(ct, vault.DomainLicense)
	assert.ErrorIs(t, err, domain.ErrInvalidCiphertext)
}

func TestVault_FallbackToDefaultKey(t *testing.T) {
	defaultKey, err := vault.GenerateKey()
	require.NoError(t, err)

	v, err := vault.New(vault.Config{DefaultKey: defaultKey})
	require.NoError(t, err)

	// El dominio "device" no tiene clave propia: usa la clave por defecto
	// y el round-trip sigue funcionando.
	ct, err := v.Encrypt("admin123", vault.DomainDevice)
	require.NoError(t, err)
	got, err := v.Decrypt(ct, vault.DomainDevice)
	require.NoError(t, err)
	assert.Equal(t, "admin123", got)
}

func TestVault_NoKeysIsConfigError(t *testing.T) {
	// Sin ninguna clave provisionada el vault no se construye: generar una
	// clave efímera dejaría secretos irrecuperables tras un reinicio.
	_, err := vault.New(vault.Config{})
	assert.ErrorIs(t, err, domain.ErrMissingEncryptionKey)
}

func TestVault_InvalidKeyRejected(t *testing.T) {
	_, err := vault.New(vault.Config{DefaultKey: "no-base64-%%%"})
	assert.Error(t, err)

	_, err = vault.New(vault.Config{DefaultKey: "Y29ydGE="}) // 5 bytes, no 32
	assert.Error(t, err)
}

func TestVault_UnknownDomainWithoutFallback(t *testing.T) {
	licenseKey, err := vault.GenerateKey()
	require.NoError(t, err)

	v, err := vault.New(vault.Config{
		Keys: map[string]string{vault.DomainLicense: licenseKey},
	})
	require.NoError(t, err)

	_, err = v.Encrypt("algo", vault.DomainAccount)
	assert.ErrorIs(t, err, domain.ErrMissingEncryptionKey,
		"dominio sin clave y sin fallback debe ser error de configuración")
}

func TestVault_CiphertextNotDeterministic(t *testing.T) {
	v := newTestVault(t)

	ct1, err := v.Encrypt("mismo-texto", vault.DomainLicense)
	require.NoError(t, err)
	ct2, err := v.Encrypt("mismo-texto", vault.DomainLicense)
	require.NoError(t, err)

	// Nonce aleatorio por operación: cifrar dos veces no repite ciphertext.
	assert.NotEqual(t, ct1, ct2)
}
