// Package codes genera códigos únicos de producto por categoría.
// El correlativo sale de una fila contador dedicada por categoría que se
// incrementa atómicamente en BD, no de parsear el sufijo del último código.
package codes

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

const prefixLen = 3

// Generator genera códigos con formato PREFIJO-00001.
type Generator struct {
	categories repository.CategoryRepository
}

// NewGenerator construye el generador.
func NewGenerator(categories repository.CategoryRepository) *Generator {
	return &Generator{categories: categories}
}

// Generate produce el siguiente código para la categoría: las tres primeras
// letras del nombre (sin tildes, en mayúsculas) más el correlativo.
func (g *Generator) Generate(categoryID string) (string, error) {
	if categoryID == "" {
		return "", domain.ErrInvalidInput
	}
	cat, err := g.categories.GetByID(categoryID)
	if err != nil {
		return "", err
	}
	if cat == nil {
		return "", domain.ErrNotFound
	}
	seq, err := g.categories.NextCodeSeq(categoryID)
	if err != nil {
		return "", fmt.Errorf("siguiente correlativo: %w", err)
	}
	return fmt.Sprintf("%s-%05d", Prefix(cat.Name), seq), nil
}

// Prefix deriva el prefijo del código desde el nombre de la categoría:
// quita diacríticos ("Impresión" -> "IMP"), descarta lo que no sea letra
// ASCII y rellena con 'X' si el nombre es muy corto.
func Prefix(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == prefixLen {
				break
			}
		}
	}
	for b.Len() < prefixLen {
		b.WriteByte('X')
	}
	return b.String()
}
