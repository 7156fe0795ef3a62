// Package store implementa los backends del almacén de sesión: archivos en
// disco para despliegues de una sola instancia y PostgreSQL para varias
// réplicas. Ambos son registros last-write-wins; el dato autoritativo vive en
// el servicio de automatización remoto.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// Asegura que FileStore implementa el puerto.
var _ ports.SessionStore = (*FileStore)(nil)

// FileStore persiste cada clave como un archivo JSON dentro de un directorio
// de estado. Las escrituras propias publican el cambio de forma síncrona a los
// suscriptores del proceso; un watcher fsnotify cubre las escrituras hechas
// por otros procesos sobre el mismo directorio.
type FileStore struct {
	fs  afero.Fs
	dir string
	log *logger.Logger
	hub hub

	mu      sync.Mutex
	propias map[string]int // escrituras propias aún no vistas por el watcher

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewFileStore construye el almacén sobre el filesystem dado (afero.NewOsFs en
// producción, afero.NewMemMapFs en tests). El watcher de cambios externos solo
// se arranca sobre el filesystem real.
func NewFileStore(fs afero.Fs, dir string, log *logger.Logger) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de estado: %w", err)
	}
	s := &FileStore{
		fs:      fs,
		dir:     dir,
		log:     log.Componente("store"),
		propias: map[string]int{},
		done:    make(chan struct{}),
	}

	if _, esReal := fs.(*afero.OsFs); esReal {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("crear watcher: %w", err)
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("observar directorio de estado: %w", err)
		}
		s.watcher = w
		s.wg.Add(1)
		go s.observar()
	}

	return s, nil
}

// Persist escribe el valor y publica el cambio a los suscriptores del proceso.
func (s *FileStore) Persist(_ context.Context, clave string, valor []byte) error {
	nombre := s.archivo(clave)

	s.mu.Lock()
	s.propias[filepath.Base(nombre)]++
	s.mu.Unlock()

	if err := afero.WriteFile(s.fs, nombre, valor, 0o644); err != nil {
		s.mu.Lock()
		s.propias[filepath.Base(nombre)]--
		s.mu.Unlock()
		return fmt.Errorf("escribir %s: %w", clave, err)
	}

	s.hub.publish(ports.CambioEstado{Clave: clave})
	return nil
}

// Read devuelve el último valor persistido. Un archivo con JSON inválido se
// limpia y se reporta como ausente: el estado corrupto jamás tumba el arranque.
func (s *FileStore) Read(ctx context.Context, clave string) ([]byte, bool, error) {
	valor, err := afero.ReadFile(s.fs, s.archivo(clave))
	if err != nil {
		return nil, false, nil // ausente
	}
	if !json.Valid(valor) {
		s.log.Warn().Str("clave", clave).Msg("estado persistido corrupto, se limpia")
		if err := s.Clear(ctx, clave); err != nil {
			s.log.Warn().Err(err).Str("clave", clave).Msg("limpiar entrada corrupta")
		}
		return nil, false, nil
	}
	return valor, true, nil
}

// Clear elimina la clave. Idempotente: borrar lo que no existe no es error.
func (s *FileStore) Clear(_ context.Context, clave string) error {
	nombre := s.archivo(clave)

	s.mu.Lock()
	s.propias[filepath.Base(nombre)]++
	s.mu.Unlock()

	if err := s.fs.Remove(nombre); err != nil {
		s.mu.Lock()
		s.propias[filepath.Base(nombre)]--
		s.mu.Unlock()
		if _, statErr := s.fs.Stat(nombre); statErr != nil {
			return nil // ya no existía
		}
		return fmt.Errorf("eliminar %s: %w", clave, err)
	}

	s.hub.publish(ports.CambioEstado{Clave: clave})
	return nil
}

// Subscribe entrega el canal de cambios de este almacén.
func (s *FileStore) Subscribe() <-chan ports.CambioEstado {
	return s.hub.subscribe()
}

// Close detiene el watcher y cierra los canales de suscripción.
func (s *FileStore) Close() error {
	close(s.done)
	var err error
	if s.watcher != nil {
		err = s.watcher.Close()
	}
	s.wg.Wait()
	s.hub.close()
	return err
}

// observar traduce eventos del filesystem en cambios externos. Los eventos que
// corresponden a escrituras propias se descartan: ya se publicaron de forma
// síncrona en Persist/Clear.
func (s *FileStore) observar() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
				continue
			}
			base := filepath.Base(ev.Name)
			clave, ok := claveDeArchivo(base)
			if !ok {
				continue
			}

			s.mu.Lock()
			if s.propias[base] > 0 {
				s.propias[base]--
				s.mu.Unlock()
				continue
			}
			s.mu.Unlock()

			s.log.Debug().Str("clave", clave).Msg("cambio externo detectado en el estado")
			s.hub.publish(ports.CambioEstado{Clave: clave, Externo: true})
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("watcher de estado")
		}
	}
}

func (s *FileStore) archivo(clave string) string {
	return filepath.Join(s.dir, clave+".json")
}

func claveDeArchivo(base string) (string, bool) {
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	return strings.TrimSuffix(base, ".json"), true
}
