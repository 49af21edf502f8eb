package world

// PointObstacle is a destructible occupant filling a single cell, such as a
// pillar or a crate stack. It blocks movement and provides cover while it
// stands.
type PointObstacle struct {
	Name          string
	Cover         Cover
	MaxDurability int
	Durability    int

	nextWatch     int
	blockWatchers map[int]func(bool)
	coverWatchers map[int]func(bool)
}

// NewPointObstacle returns a standing obstacle at full durability.
func NewPointObstacle(name string, cover Cover, durability int) *PointObstacle {
	return &PointObstacle{
		Name:          name,
		Cover:         cover,
		MaxDurability: durability,
		Durability:    durability,
	}
}

func (o *PointObstacle) OccupantKind() OccupantKind { return OccupantObstacle }

// Standing reports whether the obstacle is still intact. Indestructible
// obstacles always stand.
func (o *PointObstacle) Standing() bool {
	return o.MaxDurability <= 0 || o.Durability > 0
}

func (o *PointObstacle) BlocksMovement() bool { return o.Standing() }

// ProvidesCover reports the cover state for combat logic.
func (o *PointObstacle) ProvidesCover() bool { return o.Standing() }

// WatchBlocking implements BlockingNotifier.
func (o *PointObstacle) WatchBlocking(fn func(blocking bool)) (stop func()) {
	if o.blockWatchers == nil {
		o.blockWatchers = make(map[int]func(bool))
	}
	return o.watch(o.blockWatchers, fn)
}

// WatchCover registers fn for cover changes.
func (o *PointObstacle) WatchCover(fn func(providesCover bool)) (stop func()) {
	if o.coverWatchers == nil {
		o.coverWatchers = make(map[int]func(bool))
	}
	return o.watch(o.coverWatchers, fn)
}

func (o *PointObstacle) watch(set map[int]func(bool), fn func(bool)) func() {
	id := o.nextWatch
	o.nextWatch++
	set[id] = fn
	return func() { delete(set, id) }
}

// Damage wears the obstacle down and reports whether this call destroyed it.
// Destruction notifies blocking and cover watchers with false.
func (o *PointObstacle) Damage(amount int) bool {
	if amount <= 0 || o.MaxDurability <= 0 || !o.Standing() {
		return false
	}
	o.Durability -= amount
	if o.Durability > 0 {
		return false
	}
	o.Durability = 0
	notify(o.blockWatchers, false)
	notify(o.coverWatchers, false)
	return true
}

func notify(set map[int]func(bool), value bool) {
	for _, fn := range set {
		fn(value)
	}
}
