package router

import "errors"

var (
	ErrUnknownFamily = errors.New("router: unknown agent family")
	ErrNoRoutes      = errors.New("router: family has no routes")
)
