package component

import "roguemind/internal/ecs"

const CWeatherEffect ecs.ComponentType = 20

// WeatherEffect is stamped by a weather brain onto its own entity.
type WeatherEffect struct {
	Kind        string
	Temperature int
}

func (WeatherEffect) Type() ecs.ComponentType { return CWeatherEffect }
