package models

import "time"

// FallbackDuration is assumed for appointments whose service cannot be
// resolved from the catalogue.
const FallbackDuration = 30 * time.Minute

// UnknownServiceName is shown when an appointment references a service id
// that no longer exists in the catalogue.
const UnknownServiceName = "Servicio desconocido"

// Service is an immutable catalogue entry. The catalogue is defined at build
// time and never mutated at runtime.
type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"` // minutes, > 0
	Price    float64 `json:"price"`    // EUR, >= 0
}

// DurationTime returns the service duration as a time.Duration.
func (s Service) DurationTime() time.Duration {
	return time.Duration(s.Duration) * time.Minute
}

// Catalog is the salon's service catalogue.
type Catalog []Service

// DefaultCatalog returns the services offered by the salon.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "1", Name: "Corte de Pelo Mujer", Duration: 45, Price: 25},
		{ID: "2", Name: "Corte de Pelo Hombre", Duration: 30, Price: 15},
		{ID: "3", Name: "Tinte Completo", Duration: 90, Price: 40},
		{ID: "4", Name: "Mechas", Duration: 120, Price: 60},
		{ID: "5", Name: "Peinado", Duration: 30, Price: 20},
		{ID: "6", Name: "Tratamiento Capilar", Duration: 60, Price: 35},
	}
}

// Lookup returns the service with the given id.
func (c Catalog) Lookup(id string) (Service, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ResolveDuration returns the duration of the referenced service, or
// FallbackDuration when the id cannot be resolved.
func (c Catalog) ResolveDuration(serviceID string) time.Duration {
	if s, ok := c.Lookup(serviceID); ok {
		return s.DurationTime()
	}
	return FallbackDuration
}

// ServiceName returns the name of the referenced service, or the unknown
// placeholder when the id cannot be resolved.
func (c Catalog) ServiceName(serviceID string) string {
	if s, ok := c.Lookup(serviceID); ok {
		return s.Name
	}
	return UnknownServiceName
}
