package models

// CipheredField is one encrypted attribute of a credential record in its wire
// form: "<iv-hex>:<tag-hex>:<ciphertext-hex>". The server stores it as an
// opaque string. An empty CipheredField means the optional attribute carries
// no value at all.
type CipheredField string

// IsEmpty reports whether the field holds no ciphertext.
func (f CipheredField) IsEmpty() bool {
	return f == ""
}
