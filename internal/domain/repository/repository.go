// Package repository define los puertos de persistencia del dominio.
// Los adaptadores viven en internal/infrastructure/mongodb.
package repository

import "github.com/jmoralesv/taller-api/internal/domain/query"

// ListQuery criterio de listado producido por el constructor de filtros.
type ListQuery = query.Criteria
