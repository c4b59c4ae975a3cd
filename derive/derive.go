// Package derive computes values derived from wrapped trees with
// expressions, and keeps them up to date as the trees change.
//
// Expressions use the expr language (https://expr-lang.org). They see the
// fields of the document when it is an object, the whole document as doc,
// and the functions getpath, listpath, whereami and getenv:
//
//	count * 2
//	len(listpath("users[*].name"))
//	getpath("settings.theme") ?? "light"
package derive

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/ward"
	"github.com/signadot/ward/debug"
	"github.com/signadot/ward/ir"
)

// Expr is a compiled expression. It may be evaluated against any number of
// handles, from any goroutine.
type Expr struct {
	src string
	prg *vm.Program
}

// Compile compiles src against the environment a handle provides.
func Compile(src string) (*Expr, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Expr{src: src, prg: prg}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expr) String() string {
	return e.src
}

// Eval evaluates e against the value of h. The result is canonical, as
// returned by ir.Canon.
func (e *Expr) Eval(h *ward.Handle) (any, error) {
	out, err := expr.Run(e.prg, newEnv(h))
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", e.src, err)
	}
	res, err := ir.Canon(out)
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", e.src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q at %q gave %v\n", e.src, h.KPath(), res)
	}
	return res, nil
}

// Watch evaluates e against h, then again each time the node of h is
// replaced, and calls fn with the handle and the result whenever the result
// differs from the previous one. Evaluation errors are passed to fn as they
// occur.
//
// fn is not called for the initial value, which Watch returns.
func Watch(h *ward.Handle, e *Expr, fn func(*ward.Handle, any, error)) (any, *ward.Subscription, error) {
	last, err := e.Eval(h)
	if err != nil {
		return nil, nil, err
	}
	sub := ward.Observe(h, func(next *ward.Handle) {
		v, err := e.Eval(next)
		if err != nil {
			fn(next, nil, err)
			return
		}
		if ir.Equal(v, last) {
			return
		}
		last = v
		fn(next, v, nil)
	})
	return last, sub, nil
}

// When calls fn each time e becomes true, in the sense of ir.Truth, after a
// replacement of the node of h. Evaluation errors count as false.
func When(h *ward.Handle, e *Expr, fn func(*ward.Handle)) (*ward.Subscription, error) {
	v, err := e.Eval(h)
	if err != nil {
		return nil, err
	}
	was := ir.Truth(v)
	return ward.Observe(h, func(next *ward.Handle) {
		v, err := e.Eval(next)
		is := err == nil && ir.Truth(v)
		if is && !was {
			fn(next)
		}
		was = is
	}), nil
}
