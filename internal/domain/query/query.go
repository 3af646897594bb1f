// Package query construye criterios de búsqueda para el almacén de
// documentos a partir de query params crudos. Un parámetro inválido nunca
// falla la petición: simplemente se descarta y el resultado es más amplio.
package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Longitudes admitidas del parámetro de búsqueda q (ya recortado).
const (
	minSearchLen = 2
	maxSearchLen = 16
)

// Range describe un par de parámetros minX/maxX sobre un campo numérico.
// Cada cota se valida por separado contra [Min, Max]; si ambas están
// presentes y min > max, las dos se descartan (no se reordenan).
type Range struct {
	Param string // sufijo del parámetro: minCost/maxCost -> "Cost"
	Field string // campo bson
	Min   int
	Max   int
}

// Enum describe un parámetro que solo se aplica si pertenece a un conjunto
// fijo de valores.
type Enum struct {
	Param  string
	Field  string
	Values []string
}

// Spec parametriza el constructor de filtros para un endpoint de listado.
type Spec struct {
	// SearchField campo sobre el que busca q por subcadena (sensible a
	// mayúsculas). Vacío deshabilita q.
	SearchField string
	// IDParam nombre del parámetro de id exacto ("_id" o una foreign key).
	// Vacío deshabilita la búsqueda por id.
	IDParam string
	// IDField campo bson para el id exacto; por defecto IDParam.
	IDField string
	Enums   []Enum
	Ranges  []Range
	// DateRange habilita minDate/maxDate (YYYY-MM-DD) derivando cotas de
	// ObjectID a partir del inicio y fin del día calendario.
	DateRange bool
	// SortFields lista blanca para order=campo-dirección. "date" siempre
	// está permitido y ordena por _id.
	SortFields []string
}

// Criteria filtro y orden listos para el almacén.
type Criteria struct {
	Filter bson.M
	Sort   bson.D
}

// Build valida los parámetros crudos y arma el criterio. q y el id exacto
// cortocircuitan el resto de filtros, en ese orden.
func (s Spec) Build(params map[string]string) Criteria {
	c := Criteria{Filter: bson.M{}, Sort: s.sort(params["order"])}

	if s.SearchField != "" {
		if q, ok := validSearch(params["q"]); ok {
			c.Filter[s.SearchField] = primitive.Regex{Pattern: regexp.QuoteMeta(q)}
			return c
		}
	}
	if s.IDParam != "" {
		if oid, err := primitive.ObjectIDFromHex(params[s.IDParam]); err == nil {
			field := s.IDField
			if field == "" {
				field = s.IDParam
			}
			c.Filter[field] = oid
			return c
		}
	}

	for _, e := range s.Enums {
		if v, ok := params[e.Param]; ok && contains(e.Values, v) {
			c.Filter[e.Field] = v
		}
	}
	for _, r := range s.Ranges {
		min, okMin := validBound(params["min"+r.Param], r.Min, r.Max)
		max, okMax := validBound(params["max"+r.Param], r.Min, r.Max)
		if okMin && okMax && min > max {
			continue
		}
		bounds := bson.M{}
		if okMin {
			bounds["$gte"] = min
		}
		if okMax {
			bounds["$lte"] = max
		}
		if len(bounds) > 0 {
			c.Filter[r.Field] = bounds
		}
	}
	if s.DateRange {
		s.dateRange(params, c.Filter)
	}
	return c
}

// dateRange deriva cotas de _id del día calendario: el documento no guarda
// más marca de creación confiable que su propio ObjectID.
func (s Spec) dateRange(params map[string]string, filter bson.M) {
	min, okMin := parseDay(params["minDate"])
	max, okMax := parseDay(params["maxDate"])
	if okMin && okMax && min.After(max) {
		return
	}
	bounds := bson.M{}
	if okMin {
		bounds["$gte"] = primitive.NewObjectIDFromTimestamp(min)
	}
	if okMax {
		endOfDay := max.Add(24*time.Hour - time.Second)
		bounds["$lte"] = primitive.NewObjectIDFromTimestamp(endOfDay)
	}
	if len(bounds) > 0 {
		filter["_id"] = bounds
	}
}

// sort interpreta order=campo-dirección contra la lista blanca. Acepta el
// formato heredado order=asc|desc (por _id). Cualquier otra cosa cae al
// orden de creación descendente.
func (s Spec) sort(order string) bson.D {
	switch order {
	case "asc":
		return bson.D{{Key: "_id", Value: 1}}
	case "desc":
		return bson.D{{Key: "_id", Value: -1}}
	}
	field, dir, ok := strings.Cut(order, "-")
	if ok && (dir == "asc" || dir == "desc") {
		if field == "date" {
			field = "_id"
		} else if !contains(s.SortFields, field) {
			field = ""
		}
		if field != "" {
			v := 1
			if dir == "desc" {
				v = -1
			}
			return bson.D{{Key: field, Value: v}}
		}
	}
	return bson.D{{Key: "_id", Value: -1}}
}

func validSearch(raw string) (string, bool) {
	q := strings.TrimSpace(raw)
	if n := len([]rune(q)); n < minSearchLen || n > maxSearchLen {
		return "", false
	}
	return q, true
}

func validBound(raw string, min, max int) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

func parseDay(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
