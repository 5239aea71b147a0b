package tags

import "github.com/yohamta/donburi"

var (
	LocalAvatar  = donburi.NewTag().SetName("LocalAvatar")
	RemoteAvatar = donburi.NewTag().SetName("RemoteAvatar")
	GhostAvatar  = donburi.NewTag().SetName("GhostAvatar")
)
