package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/fonts"
)

// Converter is the conversion surface used by commands and the server.
type Converter interface {
	Convert(ctx context.Context, input mdpress.Input) (*mdpress.Result, error)
	Fonts() *fonts.Registry
	Close() error
}

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// Compile-time interface implementation checks.
var (
	_ Converter = (*mdpress.Converter)(nil)
	_ Pool      = (*poolAdapter)(nil)
)

// poolAdapter exposes *mdpress.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *mdpress.ConverterPool
}

func newPoolAdapter(n int, opts ...mdpress.Option) Pool {
	return &poolAdapter{pool: mdpress.NewConverterPool(n, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (Converter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when given a converter the pool did not hand out.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*mdpress.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }

// newConverter builds a library converter behind the Converter interface.
func newConverter(opts ...mdpress.Option) (Converter, error) {
	conv, err := mdpress.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return conv, nil
}
