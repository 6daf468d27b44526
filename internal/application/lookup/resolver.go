package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/inventory"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// Strategy una forma de resolver el token de búsqueda.
// matched=false significa "sin coincidencia, probar la siguiente"; err es un fallo real.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, token string) (result entity.LookupResult, matched bool, err error)
}

// Resolver prueba las estrategias en orden, de forma estrictamente secuencial;
// la primera con coincidencia gana y las siguientes no se invocan.
type Resolver struct {
	strategies []Strategy
	log        *logger.Logger
}

// NewResolver construye el resolver con el orden PO → número de serie.
func NewResolver(api ports.LookupAPI, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return NewResolverWithStrategies(log, POStrategy{API: api, Log: log.Component("lookup")}, UnitStrategy{API: api})
}

// NewResolverWithStrategies permite inyectar un orden propio de estrategias.
func NewResolverWithStrategies(log *logger.Logger, strategies ...Strategy) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{strategies: strategies, log: log.Component("lookup")}
}

// Resolve recorta la consulta y la resuelve. Consulta vacía = NotFound sin llamadas externas.
// Un fallo de transporte devuelve un error que envuelve domain.ErrTransport, nunca NotFound.
func (r *Resolver) Resolve(ctx context.Context, query string) (entity.LookupResult, error) {
	token := strings.TrimSpace(query)
	requestID := uuid.New().String()
	notFound := entity.LookupResult{RequestID: requestID, Kind: entity.LookupNotFound, Query: token}
	if token == "" {
		return notFound, nil
	}

	for _, s := range r.strategies {
		res, matched, err := s.Resolve(ctx, token)
		if err != nil {
			r.log.Error().Err(err).Str("strategy", s.Name()).Str("query", token).Msg("búsqueda fallida")
			if errors.Is(err, domain.ErrTransport) {
				return entity.LookupResult{}, fmt.Errorf("lookup %s: %w", s.Name(), err)
			}
			return entity.LookupResult{}, fmt.Errorf("lookup %s: %w: %w", s.Name(), domain.ErrTransport, err)
		}
		if matched {
			res.RequestID = requestID
			res.Query = token
			r.log.Debug().Str("strategy", s.Name()).Str("query", token).Str("kind", string(res.Kind)).Msg("búsqueda resuelta")
			return res, nil
		}
	}
	return notFound, nil
}

// POStrategy busca el token como número de PO. Lista vacía = sin coincidencia;
// cualquier respuesta no vacía es coincidencia aunque sus lotes sean ilegibles.
type POStrategy struct {
	API ports.LookupAPI
	Log *logger.Logger // opcional
}

func (POStrategy) Name() string { return "po" }

func (s POStrategy) Resolve(ctx context.Context, token string) (entity.LookupResult, bool, error) {
	raw, err := s.API.LookupPO(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return entity.LookupResult{}, false, nil
		}
		return entity.LookupResult{}, false, err
	}
	if len(raw) == 0 {
		return entity.LookupResult{}, false, nil
	}
	list := inventory.NormalizePOBatches(raw)
	if list.Dropped > 0 && s.Log != nil {
		s.Log.Warn().Str("po", token).Int("dropped", list.Dropped).Msg("lotes de PO descartados")
	}
	return entity.LookupResult{Kind: entity.LookupPOBatch, Batches: list.Batches}, true, nil
}

// UnitStrategy busca el token como número de serie. domain.ErrNotFound (incluido HTTP 404) = sin coincidencia.
type UnitStrategy struct {
	API ports.LookupAPI
}

func (UnitStrategy) Name() string { return "unit" }

func (s UnitStrategy) Resolve(ctx context.Context, token string) (entity.LookupResult, bool, error) {
	raw, err := s.API.LookupUnit(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return entity.LookupResult{}, false, nil
		}
		return entity.LookupResult{}, false, err
	}
	if raw == nil {
		return entity.LookupResult{}, false, nil
	}
	unit, err := inventory.NormalizeUnit(raw)
	if err != nil {
		return entity.LookupResult{}, false, fmt.Errorf("respuesta de unidad ilegible: %w", err)
	}
	return entity.LookupResult{Kind: entity.LookupUnit, Unit: unit}, true, nil
}
