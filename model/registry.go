// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package model

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Builder строит определение типа. Вызывается лениво, при первом Lookup,
// чтобы сохранить семантику "объявил один раз - ссылайся где угодно":
// на момент регистрации ссылки на ещё не зарегистрированные типы допустимы.
type Builder func() (*TypeDefinition, error)

// Registry - реестр определений типов, ключ - имя типа.
// Безопасен для конкурентного использования.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
	resolved map[string]*TypeDefinition
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
		resolved: make(map[string]*TypeDefinition),
	}
}

// Register регистрирует builder под именем name.
// Повторная регистрация того же имени - ошибка: в одном процессе имя
// должно разрешаться ровно в одно определение.
func (r *Registry) Register(name string, builder Builder) error {
	if name == "" {
		return errors.New("registry: empty type name")
	}
	if builder == nil {
		return errors.Errorf("registry: nil builder for type %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[name]; exists {
		return errors.Errorf("registry: type %q already registered", name)
	}
	r.builders[name] = builder
	return nil
}

// Lookup возвращает определение типа name, строя его при первом обращении.
// Результат мемоизируется: повторные обращения возвращают тот же объект.
func (r *Registry) Lookup(name string) (*TypeDefinition, error) {
	r.mu.RLock()
	if def, ok := r.resolved[name]; ok {
		r.mu.RUnlock()
		return def, nil
	}
	builder, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, NewError(ErrUnresolvedTypeReference, name, "", "type is not registered")
	}

	def, err := builder()
	if err != nil {
		return nil, errors.Wrapf(err, "registry: build type %q", name)
	}
	if def == nil {
		return nil, errors.Errorf("registry: builder for %q returned nil definition", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Гонка двух Lookup допустима: определение детерминировано, берём первое.
	if prev, ok := r.resolved[name]; ok {
		return prev, nil
	}
	r.resolved[name] = def
	return def, nil
}

// Names возвращает отсортированный список зарегистрированных имён.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset очищает реестр. Используется в тестах.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders = make(map[string]Builder)
	r.resolved = make(map[string]*TypeDefinition)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry возвращает реестр процесса.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
