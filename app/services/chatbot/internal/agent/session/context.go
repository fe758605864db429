package session

import (
	"encoding/json"
	"strconv"

	"AeroBot/app/services/chatbot/internal/agent/catalog"
)

// keys of the stored context blob
const (
	KeyName         = "name"
	KeyCity         = "city"
	KeyPhone        = "phone"
	KeyEmail        = "email"
	KeyFamily       = "family"
	KeyZone         = "zone"
	KeyCart         = "cart"
	KeyOrderID      = "order_id"
	KeyOrderedLines = "ordered_lines"
)

type Line struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price_clp"`
	Qty       int    `json:"qty"`
}

func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Qty)
}

// Context is the typed view of a session's context blob. Keys it does not
// know about are carried through untouched.
type Context struct {
	Name   string
	City   string
	Phone  string
	Email  string
	Family catalog.Family
	Zone   string
	Cart   []Line
	// OrderID is the last persisted order; OrderedLines is how many cart lines it covered.
	OrderID      int64
	OrderedLines int

	extra map[string]any
}

// FromMap decodes the known keys leniently: a value of the wrong shape is
// dropped instead of failing the turn.
func FromMap(m map[string]any) Context {
	c := Context{extra: make(map[string]any)}
	for k, v := range m {
		switch k {
		case KeyName:
			c.Name = asString(v)
		case KeyCity:
			c.City = asString(v)
		case KeyPhone:
			c.Phone = asString(v)
		case KeyEmail:
			c.Email = asString(v)
		case KeyFamily:
			c.Family = catalog.Family(asString(v))
		case KeyZone:
			c.Zone = asString(v)
		case KeyCart:
			c.Cart = asLines(v)
		case KeyOrderID:
			c.OrderID = asInt64(v)
		case KeyOrderedLines:
			c.OrderedLines = int(asInt64(v))
		default:
			c.extra[k] = v
		}
	}
	return c
}

// ToMap writes every known key, so merging it over the stored blob replaces
// all typed fields while unknown keys survive.
func (c Context) ToMap() map[string]any {
	m := make(map[string]any, len(c.extra)+9)
	for k, v := range c.extra {
		m[k] = v
	}
	cart := c.Cart
	if cart == nil {
		cart = []Line{}
	}
	m[KeyName] = c.Name
	m[KeyCity] = c.City
	m[KeyPhone] = c.Phone
	m[KeyEmail] = c.Email
	m[KeyFamily] = string(c.Family)
	m[KeyZone] = c.Zone
	m[KeyCart] = cart
	m[KeyOrderID] = c.OrderID
	m[KeyOrderedLines] = c.OrderedLines
	return m
}

// Reset clears the order cycle, keeping only unknown keys.
func (c Context) Reset() Context {
	return Context{extra: c.extra, Cart: []Line{}}
}

// Contact is the phone when given, else the email.
func (c Context) Contact() string {
	if c.Phone != "" {
		return c.Phone
	}
	return c.Email
}

// Missing lists the contact fields still required, in the order they are asked.
func (c Context) Missing() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "NOMBRE")
	}
	if c.City == "" {
		missing = append(missing, "COMUNA/CIUDAD")
	}
	if c.Phone == "" && c.Email == "" {
		missing = append(missing, "TELÉFONO o EMAIL")
	}
	return missing
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

func asLines(v any) []Line {
	if lines, ok := v.([]Line); ok {
		return append([]Line(nil), lines...)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil
	}
	return lines
}
