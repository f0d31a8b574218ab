package models

import "strconv"

// Logia is one directory entry. Field names follow the JSON document the
// directory is published as; the db tags match the table columns.
type Logia struct {
	Numero       int    `json:"numero" db:"numero"`
	Nombre       string `json:"nombre" db:"nombre"`
	Direccion    string `json:"direccion" db:"direccion"`
	Ciudad       string `json:"ciudad" db:"ciudad"`
	Jurisdiccion string `json:"jurisdiccion" db:"jurisdiccion"`
	Dias         string `json:"dias" db:"dias"`
	Hora         string `json:"hora" db:"hora"`
	URLMaps      string `json:"url_maps" db:"url_maps"`
}

// NumeroString is the decimal form of Numero, used for free-text matching.
func (l Logia) NumeroString() string {
	return strconv.Itoa(l.Numero)
}
