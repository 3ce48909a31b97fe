package persistence

import "time"

type SceneKeeperOpt func(*SceneKeeper)

// WithAutosave saves the scene every d in addition to the save on shutdown.
func WithAutosave(d time.Duration) SceneKeeperOpt {
	return func(k *SceneKeeper) {
		k.interval = d
	}
}
