package ecs_test

import "github.com/plus3/rechthoek/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Lifetime struct {
	TTL int
}

type Tag struct{}

type Score int32

type Follower struct {
	Leader *ecs.EntityRef
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Follower](registry)
	return registry
}
