package catalog

import (
	"errors"
	"fmt"
	"strings"

	"AeroBot/app/common/util"
)

var ErrProductNotFound = errors.New("product not found")

type Family string

const (
	FamilyHuman Family = "humana"
	FamilyPet   Family = "mascota"
)

// size tags used by the detail states to resolve a product
const (
	SizeAdult     = "adulto"
	SizePediatric = "pediatrico"
	SizePetSmall  = "gato_peq"
	SizePetMedium = "perro_med"
	SizePetLarge  = "perro_grande"
)

type Product struct {
	SKU         string `json:"sku"`
	Family      Family `json:"family"`
	Size        string `json:"size"`
	Name        string `json:"name"`
	PriceCLP    int64  `json:"price_clp"`
	Description string `json:"description,optional"`
}

// Catalog is read only after construction and safe for concurrent use.
type Catalog struct {
	products []Product
	bySKU    map[string]int
}

func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		bySKU:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		sku := strings.ToUpper(strings.TrimSpace(p.SKU))
		if sku == "" {
			return nil, errors.New("catalog: empty sku")
		}
		if p.Family != FamilyHuman && p.Family != FamilyPet {
			return nil, fmt.Errorf("catalog: sku %s has unknown family %q", sku, p.Family)
		}
		if p.PriceCLP <= 0 {
			return nil, fmt.Errorf("catalog: sku %s has no price", sku)
		}
		if _, dup := c.bySKU[sku]; dup {
			return nil, fmt.Errorf("catalog: duplicate sku %s", sku)
		}
		p.SKU = sku
		c.bySKU[sku] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func MustNew(products []Product) *Catalog {
	c, err := New(products)
	if err != nil {
		panic(err)
	}
	return c
}

// Default is the merchant's current price list.
func Default() *Catalog {
	return MustNew(DefaultProducts())
}

func DefaultProducts() []Product {
	return []Product{
		{SKU: "AERO-H-ADUL", Family: FamilyHuman, Size: SizeAdult, Name: "Aerocámara Plegable Humana Adulto", PriceCLP: 26990,
			Description: "Válvula unidireccional, mascarilla adulto de silicona y cuerpo plegable antiestático."},
		{SKU: "AERO-H-PED", Family: FamilyHuman, Size: SizePediatric, Name: "Aerocámara Plegable Humana Pediátrica", PriceCLP: 24990,
			Description: "Mascarilla pediátrica suave, válvula de baja resistencia ideal para niños y niñas."},
		{SKU: "AERO-M-GP", Family: FamilyPet, Size: SizePetSmall, Name: "Aerocámara Plegable Mascotas (Gato/Perro Pequeño)", PriceCLP: 22990,
			Description: "Mascarilla talla S para gatos y perros pequeños, sello suave en hocico."},
		{SKU: "AERO-M-PM", Family: FamilyPet, Size: SizePetMedium, Name: "Aerocámara Plegable Mascotas (Perro Mediano)", PriceCLP: 24990,
			Description: "Mascarilla talla M para perros medianos."},
		{SKU: "AERO-M-PG", Family: FamilyPet, Size: SizePetLarge, Name: "Aerocámara Plegable Mascotas (Perro Grande)", PriceCLP: 27990,
			Description: "Mascarilla talla L para perros grandes, cuerpo reforzado."},
	}
}

func (c *Catalog) Lookup(sku string) (Product, error) {
	idx, ok := c.bySKU[strings.ToUpper(strings.TrimSpace(sku))]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, sku)
	}
	return c.products[idx], nil
}

// BySize finds the product of a family carrying the given size tag.
func (c *Catalog) BySize(family Family, size string) (Product, error) {
	for _, p := range c.products {
		if p.Family == family && p.Size == size {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s/%s", ErrProductNotFound, family, size)
}

func (c *Catalog) Family(f Family) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Family == f {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindSKU returns the first catalog SKU mentioned in text, case insensitive.
func (c *Catalog) FindSKU(text string) (Product, bool) {
	upper := strings.ToUpper(text)
	for _, p := range c.products {
		if strings.Contains(upper, p.SKU) {
			return p, true
		}
	}
	return Product{}, false
}

// Listing renders one line per product of the family.
func (c *Catalog) Listing(f Family) string {
	lines := make([]string, 0, len(c.products))
	for _, p := range c.Family(f) {
		lines = append(lines, fmt.Sprintf("- %s: %s (SKU %s)", p.Name, util.FormatCLP(p.PriceCLP), p.SKU))
	}
	return strings.Join(lines, "\n")
}
