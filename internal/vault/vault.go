// Package vault cifra y descifra secretos cortos (claves de licencia,
// contraseñas de cuentas y de equipos) por dominio de clave.
//
// Cada dominio tiene su propia clave simétrica; si un dominio no tiene clave
// configurada se usa la clave por defecto. El texto cifrado es
// base64(nonce‖AEAD) con el nombre del dominio como dato adicional
// autenticado, de modo que un ciphertext solo abre bajo la clave y el
// dominio que lo produjeron.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/jhoicas/activos-ti/internal/domain"
)

// Dominios de clave conocidos.
const (
	DomainLicense = "license"
	DomainAccount = "account"
	DomainDevice  = "device"
)

// Config claves del vault, inyectadas explícitamente en la construcción.
// Cada clave es 32 bytes en base64 estándar (ver GenerateKey). DefaultKey
// es el fallback para dominios sin clave propia.
//
// Las claves deben provisionarse externamente y persistirse: un secreto
// cifrado con una clave efímera se vuelve irrecuperable al reiniciar el
// proceso, por eso aquí no se genera ninguna clave automáticamente.
type Config struct {
	Keys       map[string]string // dominio -> clave base64
	DefaultKey string
}

// Vault cifrador simétrico por dominio. Inmutable tras la construcción;
// seguro para uso concurrente.
type Vault struct {
	keys     map[string][]byte
	fallback []byte
}

// New construye el vault decodificando las claves de la configuración.
// Sin ninguna clave configurada devuelve domain.ErrMissingEncryptionKey:
// es un error de configuración, no un estado operable.
func New(cfg Config) (*Vault, error) {
	v := &Vault{keys: make(map[string][]byte, len(cfg.Keys))}
	for dom, enc := range cfg.Keys {
		if enc == "" {
			continue
		}
		key, err := decodeKey(enc)
		if err != nil {
			return nil, fmt.Errorf("clave del dominio %q: %w", dom, err)
		}
		v.keys[dom] = key
	}
	if cfg.DefaultKey != "" {
		key, err := decodeKey(cfg.DefaultKey)
		if err != nil {
			return nil, fmt.Errorf("clave por defecto: %w", err)
		}
		v.fallback = key
	}
	if len(v.keys) == 0 && v.fallback == nil {
		return nil, domain.ErrMissingEncryptionKey
	}
	return v, nil
}

// GenerateKey genera una clave nueva de 32 bytes en base64, para
// provisionamiento inicial y para tests con claves desechables.
func GenerateKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generar clave: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Encrypt cifra un secreto bajo la clave del dominio. Plaintext vacío
// devuelve ("", nil): "sin secreto" es un estado válido, no un error.
// Cualquier fallo criptográfico o de configuración se devuelve como error
// tipado, nunca como cadena vacía silenciosa.
func (v *Vault) Encrypt(plaintext, dom string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	key, err := v.keyFor(dom)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("inicializar cifrador: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generar nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), []byte(dom))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt recupera el texto plano de un ciphertext del dominio dado.
// Ciphertext vacío devuelve ("", nil). Clave equivocada, payload corrupto o
// dominio distinto devuelven domain.ErrInvalidCiphertext: distinguible de
// "sin secreto" y nunca un panic.
func (v *Vault) Decrypt(ciphertext, dom string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	key, err := v.keyFor(dom)
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: base64 inválido", domain.ErrInvalidCiphertext)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("inicializar cifrador: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", fmt.Errorf("%w: payload truncado", domain.ErrInvalidCiphertext)
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, []byte(dom))
	if err != nil {
		return "", domain.ErrInvalidCiphertext
	}
	return string(plain), nil
}

// keyFor resuelve la clave de un dominio con fallback a la clave por defecto.
func (v *Vault) keyFor(dom string) ([]byte, error) {
	if key, ok := v.keys[dom]; ok {
		return key, nil
	}
	if v.fallback != nil {
		return v.fallback, nil
	}
	return nil, fmt.Errorf("%w: dominio %q", domain.ErrMissingEncryptionKey, dom)
}

func decodeKey(enc string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("base64 inválido: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("se esperaban %d bytes, hay %d", chacha20poly1305.KeySize, len(key))
	}
	return key, nil
}
