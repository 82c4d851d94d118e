package server

// PlayerView is one roster entry as a particular viewer is allowed to see it.
// Role is nil for every player whose role the viewer may not know.
type PlayerView struct {
	Identity   string  `json:"uuid"`
	Name       string  `json:"name"`
	Role       *string `json:"role"`
	IsShahrdar bool    `json:"isShahrdar"`
	Connected  bool    `json:"connected"`
	Eliminated bool    `json:"eliminated"`
}

// rosterView computes the redacted roster for one viewer. A viewer always
// sees their own role; werewolves see each other; the shahrdar overlay is
// public. Outside an active game no role is disclosed at all.
//
// The projection is recomputed on every call. Both the live broadcast path
// and the resume path go through here so the two can never drift.
func rosterView(room *Room, viewer *Player) []PlayerView {
	views := make([]PlayerView, 0, len(room.Players))
	for _, player := range room.orderedPlayers() {
		view := PlayerView{
			Identity:   player.Identity,
			Name:       player.Name,
			IsShahrdar: room.playing() && player.IsShahrdar,
			Connected:  player.Connected,
			Eliminated: player.Eliminated,
		}
		if room.playing() && roleVisible(viewer, player) {
			role := player.Role
			view.Role = &role
		}
		views = append(views, view)
	}
	return views
}

func roleVisible(viewer, target *Player) bool {
	if viewer == nil {
		return false
	}
	if viewer.Identity == target.Identity {
		return true
	}
	return viewer.isWerewolf() && target.isWerewolf()
}

// wordVisible reports whether the secret word may be disclosed to the viewer:
// seer, werewolves and the shahrdar, and only while a game is running.
func wordVisible(room *Room, viewer *Player) bool {
	if viewer == nil || !room.playing() {
		return false
	}
	return viewer.Role == roleSeer || viewer.isWerewolf() || viewer.IsShahrdar
}

// teammates lists the viewer's fellow werewolves, excluding the viewer.
func teammates(room *Room, viewer *Player) []PlayerView {
	if viewer == nil || !viewer.isWerewolf() {
		return nil
	}
	views := make([]PlayerView, 0)
	for _, player := range room.orderedPlayers() {
		if player.Identity == viewer.Identity || !player.isWerewolf() {
			continue
		}
		role := player.Role
		views = append(views, PlayerView{
			Identity:   player.Identity,
			Name:       player.Name,
			Role:       &role,
			IsShahrdar: player.IsShahrdar,
			Connected:  player.Connected,
			Eliminated: player.Eliminated,
		})
	}
	return views
}
