// Package store implementa la caché con estado que respalda los
// vocabularios del backoffice: cada colección lleva su bandera de carga,
// el mensaje del último error y los datos vigentes.
package store

import (
	"context"
	"sync"
)

// Estados de carga de una colección.
const (
	Inactivo = "inactivo"
	Cargando = "cargando"
	Cargado  = "cargado"
	Error    = "error"
)

// Fetcher obtiene la colección completa desde el upstream.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Store cachea una colección con su estado de carga. Las cargas
// concurrentes se identifican por secuencia: una respuesta solo se
// aplica si sigue siendo la carga más reciente, de modo que una
// respuesta tardía nunca pisa datos más nuevos.
type Store[T any] struct {
	mu      sync.Mutex
	estado  string
	mensaje string
	datos   T
	seq     uint64
}

// New retorna un store vacío en estado inactivo.
func New[T any]() *Store[T] {
	return &Store[T]{estado: Inactivo}
}

// Cargar ejecuta el fetcher y actualiza datos y estado. Retorna los
// datos vigentes tras aplicar (o descartar) el resultado.
func (s *Store[T]) Cargar(ctx context.Context, fetch Fetcher[T]) (T, error) {
	s.mu.Lock()
	s.seq++
	mySeq := s.seq
	s.estado = Cargando
	s.mu.Unlock()

	datos, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if mySeq != s.seq {
		// Llegó tarde: otra carga más reciente manda.
		return s.datos, err
	}
	if err != nil {
		s.estado = Error
		s.mensaje = err.Error()
		return s.datos, err
	}
	s.estado = Cargado
	s.mensaje = ""
	s.datos = datos
	return s.datos, nil
}

// Datos retorna la colección cacheada junto con su estado de carga.
func (s *Store[T]) Datos() (T, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.datos, s.estado
}

// Mensaje retorna el mensaje del último error, vacío si no hubo.
func (s *Store[T]) Mensaje() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mensaje
}

// Invalidar descarta la caché; la siguiente lectura vuelve a cargar.
func (s *Store[T]) Invalidar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.datos = zero
	s.estado = Inactivo
	s.mensaje = ""
	s.seq++
}

// Vigente indica si hay datos cargados utilizables.
func (s *Store[T]) Vigente() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estado == Cargado
}
