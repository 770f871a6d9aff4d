package ledger

import "sync"

// EntityLocks serializa las mutaciones por entidad dentro del proceso:
// a lo sumo una operación en vuelo por entity id. Operaciones sobre entidades
// distintas no se coordinan entre sí. La base de datos aporta además
// SELECT FOR UPDATE, pero el lock en memoria evita que dos goroutines del
// mismo proceso compitan por la misma fila.
type EntityLocks struct {
	mu    sync.Mutex
	locks map[string]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

// NewEntityLocks construye el registro de locks.
func NewEntityLocks() *EntityLocks {
	return &EntityLocks{locks: make(map[string]*entityLock)}
}

// WithEntity ejecuta fn con el lock exclusivo de la entidad.
// El lock se libera (y se recolecta si nadie más lo espera) al retornar fn.
func (l *EntityLocks) WithEntity(entityID string, fn func() error) error {
	el := l.acquire(entityID)
	el.mu.Lock()
	defer func() {
		el.mu.Unlock()
		l.release(entityID, el)
	}()
	return fn()
}

func (l *EntityLocks) acquire(entityID string) *entityLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	el, ok := l.locks[entityID]
	if !ok {
		el = &entityLock{}
		l.locks[entityID] = el
	}
	el.refs++
	return el
}

func (l *EntityLocks) release(entityID string, el *entityLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	el.refs--
	if el.refs == 0 {
		delete(l.locks, entityID)
	}
}
