package memory

import (
	"fmt"
	"sync"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
)

// Store holds all in-memory state behind one mutex so the ledger can mutate
// several entities as a single atomic unit. The per-entity repositories share
// the store.
type Store struct {
	mu sync.RWMutex

	players   map[string]player.Player
	squads    map[string]squad.Squad
	matchdays map[string]matchday.Matchday
	offers    map[string]transfer.Offer
	history   []transfer.History
	matches   map[string]stats.Match
	statLines map[string][]stats.PlayerMatchStats
	points    map[string]stats.PlayerMatchPoints
	// squadPoints is keyed league::squad::matchday; squad running totals are
	// recomputed from these rows.
	squadPoints map[string]int

	idGen id.Generator
}

func NewStore() *Store {
	return &Store{
		players:     make(map[string]player.Player),
		squads:      make(map[string]squad.Squad),
		matchdays:   make(map[string]matchday.Matchday),
		offers:      make(map[string]transfer.Offer),
		history:     make([]transfer.History, 0),
		matches:     make(map[string]stats.Match),
		statLines:   make(map[string][]stats.PlayerMatchStats),
		points:      make(map[string]stats.PlayerMatchPoints),
		squadPoints: make(map[string]int),
		idGen:       id.NewRandomGenerator(),
	}
}

func (s *Store) PutPlayer(p player.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

func (s *Store) PutSquad(sq squad.Squad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.squads[sq.ID] = cloneSquad(sq)
}

func (s *Store) PutMatchday(md matchday.Matchday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchdays[md.ID] = md
}

func (s *Store) PutMatch(m stats.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = m
}

func (s *Store) PutStatLine(line stats.PlayerMatchStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statLines[line.MatchID] = append(s.statLines[line.MatchID], line)
}

func cloneSquad(sq squad.Squad) squad.Squad {
	copied := sq
	copied.Members = append([]squad.Member(nil), sq.Members...)
	return copied
}

func pointsKey(playerID, matchID string) string {
	return playerID + "::" + matchID
}

func squadPointsKey(leagueID, squadID string, number int) string {
	return fmt.Sprintf("%s::%s::%d", leagueID, squadID, number)
}

// recomputeSquadTotal must be called with the write lock held.
func (s *Store) recomputeSquadTotal(leagueID, squadID string) {
	sq, ok := s.squads[squadID]
	if !ok {
		return
	}
	total := 0
	prefix := leagueID + "::" + squadID + "::"
	for key, points := range s.squadPoints {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			total += points
		}
	}
	sq.Points = total
	s.squads[squadID] = sq
}
