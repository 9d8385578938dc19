package engine

import (
	"fmt"
	"strings"

	"github.com/matchdayhq/matchday-data/internal/model"
)

// ReconcilePlayers merges duplicate team snapshots and re-derives every
// player's career stats from match lineups and events.
//
// The computation is a total recomputation, not an incremental update:
// every player's stats are reset to a copy of their admin-entered baseStats
// before the match scan, so calling it twice with the same input is a
// no-op difference. Players referenced by an event or lineup but missing
// from every roster are materialized with a stable id rather than dropped,
// so incomplete roster data never loses a goal or card tally.
func ReconcilePlayers(teams []model.Team, matches []model.Match) []model.Team {
	state := newRosterState(teams)

	// Every player restarts from the historical floor.
	for _, r := range state.rosters {
		for _, p := range r.players {
			p.Stats = p.BaseStats
		}
	}

	for _, m := range sortedMatches(DedupMatches(matches)) {
		key := DedupKey(m)
		state.scanLineups(m, key)
		state.scanEvents(m)
		state.awardPlayerOfTheMatch(m)
	}

	out := make([]model.Team, len(state.rosters))
	for i, r := range state.rosters {
		team := r.team
		team.Players = make([]model.Player, len(r.players))
		for j, p := range r.players {
			team.Players[j] = *p
		}
		out[i] = team
	}
	return out
}

// roster is one merged team with its players allocated individually so
// indexed pointers stay valid as discovered players are appended.
type roster struct {
	team    model.Team
	players []*model.Player
}

// rosterState indexes the merged rosters for resolution by id and by
// normalized name, and tracks which matches already counted toward each
// player's appearances.
type rosterState struct {
	rosters      []*roster
	rosterByName map[string]*roster
	byID         map[int]*model.Player
	byName       map[string]*model.Player
	counted      map[*model.Player]map[string]bool
}

// newRosterState folds the input snapshots into one roster per normalized
// team name. When the same team appears twice (a competition blob and a
// youth blob, say) the more complete field wins on conflict, and a player
// present in only one copy is always kept. Input values are copied, never
// mutated.
func newRosterState(teams []model.Team) *rosterState {
	s := &rosterState{
		rosterByName: make(map[string]*roster),
		byID:         make(map[int]*model.Player),
		byName:       make(map[string]*model.Player),
		counted:      make(map[*model.Player]map[string]bool),
	}

	for _, t := range teams {
		key := Normalize(t.Name)
		existing, ok := s.rosterByName[key]
		if !ok {
			r := &roster{team: t}
			r.team.Players = nil
			r.team.Staff = cloneStaff(t.Staff)
			for _, p := range t.Players {
				clone := clonePlayer(p)
				r.players = append(r.players, &clone)
			}
			s.rosters = append(s.rosters, r)
			s.rosterByName[key] = r
			continue
		}
		mergeRoster(existing, t)
	}

	for _, r := range s.rosters {
		for _, p := range r.players {
			s.index(p)
		}
	}
	return s
}

func (s *rosterState) index(p *model.Player) {
	if p.ID != 0 {
		if _, taken := s.byID[p.ID]; !taken {
			s.byID[p.ID] = p
		}
	}
	if key := Normalize(p.Name); key != "" {
		if _, taken := s.byName[key]; !taken {
			s.byName[key] = p
		}
	}
}

// resolve finds a player by explicit id, else by normalized name.
func (s *rosterState) resolve(id int, name string) *model.Player {
	if id != 0 {
		if p, ok := s.byID[id]; ok {
			return p
		}
	}
	if key := Normalize(name); key != "" {
		if p, ok := s.byName[key]; ok {
			return p
		}
	}
	return nil
}

// discover materializes a player onto the named team's roster. The id is
// the explicit one when given, else a stable hash of the normalized name,
// so repeated runs reproduce the same identity. Returns nil when the team
// itself is unknown — there is no roster to attach to.
func (s *rosterState) discover(teamName string, id int, name string) *model.Player {
	r := s.rosterByName[Normalize(teamName)]
	if r == nil {
		return nil
	}
	if id == 0 {
		id = StableID(name)
	}
	if name == "" {
		name = fmt.Sprintf("Player %d", id)
	}
	p := &model.Player{ID: id, Name: name}
	r.players = append(r.players, p)
	s.index(p)
	return p
}

// markCounted records that a match contributed to a player and reports
// whether it had already done so. Guards appearance and clean-sheet counts
// against duplicate-but-identical records.
func (s *rosterState) markCounted(p *model.Player, matchKey string) bool {
	keys := s.counted[p]
	if keys == nil {
		keys = make(map[string]bool)
		s.counted[p] = keys
	}
	if keys[matchKey] {
		return false
	}
	keys[matchKey] = true
	return true
}

// scanLineups credits one appearance per listed player per unique match,
// plus a clean sheet for goalkeepers and defenders on a side that conceded
// nothing in a finished match.
func (s *rosterState) scanLineups(m model.Match, matchKey string) {
	sides := []struct {
		team     string
		lineup   model.Lineup
		conceded *int
	}{
		{m.TeamA, m.Lineups.TeamA, m.ScoreB},
		{m.TeamB, m.Lineups.TeamB, m.ScoreA},
	}

	for _, side := range sides {
		cleanSheet := m.Status == model.StatusFinished &&
			side.conceded != nil && *side.conceded == 0

		ids := make([]int, 0, len(side.lineup.Starters)+len(side.lineup.Subs))
		ids = append(ids, side.lineup.Starters...)
		ids = append(ids, side.lineup.Subs...)

		for _, id := range ids {
			p := s.resolve(id, "")
			if p == nil {
				p = s.discover(side.team, id, "")
			}
			if p == nil || !s.markCounted(p, matchKey) {
				continue
			}
			p.Stats.Appearances++
			if cleanSheet && (p.Position == model.PositionGoalkeeper || p.Position == model.PositionDefender) {
				p.Stats.CleanSheets++
			}
		}
	}
}

// scanEvents credits goals, assists and cards. An event naming a player
// absent from every roster materializes a discovered player on the event's
// team; an event that resolves to no player and no known team is skipped.
func (s *rosterState) scanEvents(m model.Match) {
	for _, ev := range m.Events {
		switch ev.Type {
		case model.EventGoal:
			if p := s.resolveOrDiscover(ev.TeamName, ev.PlayerID, ev.PlayerName); p != nil {
				p.Stats.Goals++
			}
			if ev.AssistPlayerID != 0 || ev.AssistPlayerName != "" {
				if p := s.resolveOrDiscover(ev.TeamName, ev.AssistPlayerID, ev.AssistPlayerName); p != nil {
					p.Stats.Assists++
				}
			}
		case model.EventCard:
			p := s.resolveOrDiscover(ev.TeamName, ev.PlayerID, ev.PlayerName)
			if p == nil {
				continue
			}
			if ev.Card == model.CardRed {
				p.Stats.RedCards++
			} else {
				p.Stats.YellowCards++
			}
		}
	}
}

func (s *rosterState) resolveOrDiscover(teamName string, id int, name string) *model.Player {
	if id == 0 && name == "" {
		return nil
	}
	if p := s.resolve(id, name); p != nil {
		return p
	}
	return s.discover(teamName, id, name)
}

func (s *rosterState) awardPlayerOfTheMatch(m model.Match) {
	ref := m.PlayerOfTheMatch
	if ref == nil {
		return
	}
	if p := s.resolveOrDiscover(ref.Team, ref.ID, ref.Name); p != nil {
		p.Stats.PotmWins++
	}
}

// --------------------------------------------------------------------------
// Snapshot merging
// --------------------------------------------------------------------------

// mergeRoster folds a second snapshot of the same team into dst. Fields keep
// the more complete value; players merge by id, else normalized name, and a
// player present in only one snapshot is kept.
func mergeRoster(dst *roster, src model.Team) {
	if preferIncoming(dst.team.CrestURL, src.CrestURL) {
		dst.team.CrestURL = src.CrestURL
	}
	if dst.team.ShortCode == "" {
		dst.team.ShortCode = src.ShortCode
	}
	if dst.team.Colors == "" {
		dst.team.Colors = src.Colors
	}
	if len(dst.team.Staff) == 0 {
		dst.team.Staff = cloneStaff(src.Staff)
	}

	for _, sp := range src.Players {
		if dp := findPlayer(dst.players, sp); dp != nil {
			mergePlayer(dp, sp)
			continue
		}
		clone := clonePlayer(sp)
		dst.players = append(dst.players, &clone)
	}
}

func findPlayer(players []*model.Player, target model.Player) *model.Player {
	if target.ID != 0 {
		for _, p := range players {
			if p.ID == target.ID {
				return p
			}
		}
	}
	key := Normalize(target.Name)
	if key == "" {
		return nil
	}
	for _, p := range players {
		if Normalize(p.Name) == key {
			return p
		}
	}
	return nil
}

func mergePlayer(dst *model.Player, src model.Player) {
	if dst.ID == 0 {
		dst.ID = src.ID
	}
	if dst.Position == "" {
		dst.Position = src.Position
	}
	if dst.Number == 0 {
		dst.Number = src.Number
	}
	if dst.Bio == "" {
		dst.Bio = src.Bio
	}
	if dst.PhotoURL == "" {
		dst.PhotoURL = src.PhotoURL
	}
	if dst.BaseStats.IsZero() && !src.BaseStats.IsZero() {
		dst.BaseStats = src.BaseStats
	}
	if len(dst.TransferHistory) == 0 {
		dst.TransferHistory = append([]model.Transfer(nil), src.TransferHistory...)
	}
}

// preferIncoming reports whether the incoming value is more complete than
// the current one. Placeholder crest URLs lose to real ones.
func preferIncoming(current, incoming string) bool {
	if incoming == "" {
		return false
	}
	if current == "" {
		return true
	}
	return isPlaceholder(current) && !isPlaceholder(incoming)
}

func isPlaceholder(url string) bool {
	return strings.Contains(strings.ToLower(url), "placeholder")
}

func clonePlayer(p model.Player) model.Player {
	clone := p
	clone.TransferHistory = append([]model.Transfer(nil), p.TransferHistory...)
	return clone
}

func cloneStaff(staff []model.StaffMember) []model.StaffMember {
	return append([]model.StaffMember(nil), staff...)
}
