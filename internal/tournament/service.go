package tournament

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sabocue/arena/internal/bracket"
	"github.com/sabocue/arena/internal/engine"
	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/notifier"
	"github.com/sabocue/arena/internal/pubsub"
	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
	"github.com/sabocue/arena/internal/store"
)

var _ TournamentService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithDryRun suppresses outbound notifications; they are logged instead.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) { s.dryRun = dryRun }
}

// New creates the tournament service. The engine and coordinator are
// constructed internally over the given registry.
func New(reg registry.MatchRegistry, st store.TournamentStore, notif notifier.Notifier, m metrics.Metrics, ps pubsub.PubSubClient, defaultRaceTo int, opts ...Option) *Service {
	s := &Service{
		registry:      reg,
		engine:        engine.New(reg),
		coordinator:   engine.NewCoordinator(reg),
		store:         st,
		notifier:      notif,
		metrics:       m,
		pubsub:        ps,
		defaultRaceTo: defaultRaceTo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTournament builds both group brackets, persists them, and seeds the
// registry. Persistence happens before the registry is touched so a storage
// failure leaves no half-created tournament in memory.
func (s *Service) CreateTournament(clubID string, groupA, groupB []string, raceTo int) (*sabo.Tournament, error) {
	if raceTo <= 0 {
		raceTo = s.defaultRaceTo
	}

	seen := make(map[string]struct{}, len(groupA)+len(groupB))
	for _, ref := range append(append([]string{}, groupA...), groupB...) {
		if _, dup := seen[ref]; dup {
			return nil, fmt.Errorf("participant %q appears twice: %w", ref, sabo.ErrDuplicateParticipant)
		}
		seen[ref] = struct{}{}
	}

	t := &sabo.Tournament{
		ID:        uuid.New().String(),
		ClubID:    clubID,
		Status:    sabo.TournamentDraft,
		RaceTo:    raceTo,
		CreatedAt: time.Now().Unix(),
	}

	var groups []*sabo.Group
	var matches []*sabo.Match
	for _, g := range []struct {
		id           sabo.GroupID
		participants []string
	}{{sabo.GroupA, groupA}, {sabo.GroupB, groupB}} {
		gm, err := bracket.GenerateGroup(t.ID, g.id, g.participants, raceTo)
		if err != nil {
			return nil, fmt.Errorf("generating group %s: %w", g.id, err)
		}
		groups = append(groups, &sabo.Group{
			TournamentID: t.ID,
			ID:           g.id,
			Status:       sabo.GroupPending,
			Participants: g.participants,
		})
		matches = append(matches, gm...)
	}

	if err := s.store.SaveTournament(t, groups); err != nil {
		return nil, err
	}
	if err := s.store.SaveMatches(matches); err != nil {
		return nil, err
	}
	if err := s.registry.Add(matches...); err != nil {
		return nil, err
	}

	s.metrics.IncTournamentsCreated()
	log.Info("Tournament created", "tournamentID", t.ID, "clubID", clubID, "raceTo", raceTo)
	return t, nil
}

// SubmitScore records a result, advances the bracket one hop, mirrors the
// changes to the store, and fires the completion side effects. The returned
// bool is true when this submission unlocked the final stage.
func (s *Service) SubmitScore(tournamentID, matchID string, score1, score2 int) (*sabo.Match, bool, error) {
	startTime := time.Now()

	t, err := s.ensureLoaded(tournamentID)
	if err != nil {
		return nil, false, err
	}

	res, err := s.engine.SubmitScore(tournamentID, matchID, score1, score2)
	if err != nil {
		s.metrics.IncScoreRejections()
		return nil, false, err
	}

	if err := s.mirrorMatch(res.Match); err != nil {
		return nil, false, err
	}

	if err := s.markStarted(t, res.Match); err != nil {
		return nil, false, err
	}

	if res.GroupCompleted != nil {
		if err := s.onGroupCompleted(t, *res.GroupCompleted); err != nil {
			return nil, false, err
		}
	}

	// Attempted on every submission while the flag is unset, not just on the
	// group-completion edge, so a failed persist of the final stage is
	// recovered by the next (possibly identical) submission.
	unlocked := false
	if !t.FinalStageCreated {
		unlocked, err = s.tryUnlockFinal(t)
		if err != nil {
			return nil, false, err
		}
	}

	if res.TournamentCompleted {
		if err := s.onTournamentCompleted(t, res.Champion); err != nil {
			return nil, false, err
		}
	}

	s.metrics.IncScoresSubmitted()
	s.metrics.ObserveAdvancementDuration(time.Since(startTime).Seconds())
	return res.Match, unlocked, nil
}

// mirrorMatch persists the scored match and the downstream matches its
// winner and loser advanced into.
func (s *Service) mirrorMatch(m *sabo.Match) error {
	if err := s.store.UpdateMatch(m); err != nil {
		return fmt.Errorf("mirroring match %s: %w", m.ID, err)
	}
	for _, dest := range []*sabo.Destination{m.WinnerTo, m.LoserTo} {
		if dest == nil {
			continue
		}
		dm, err := s.registry.GetByPosition(m.TournamentID, m.GroupID, *dest)
		if err != nil {
			return fmt.Errorf("reading destination of match %s: %w", m.ID, err)
		}
		if err := s.store.UpdateMatch(dm); err != nil {
			return fmt.Errorf("mirroring destination match %s: %w", dm.ID, err)
		}
	}
	return nil
}

// markStarted moves the tournament and the scored match's group out of their
// initial draft and pending states once their first result lands. The
// completed-match count makes the group transition idempotent under
// resubmits of the same score.
func (s *Service) markStarted(t *sabo.Tournament, m *sabo.Match) error {
	if t.Status == sabo.TournamentDraft {
		t.Status = sabo.TournamentInProgress
		if err := s.store.UpdateTournament(t); err != nil {
			return err
		}
		log.Info("Tournament started", "tournamentID", t.ID)
	}
	if m.GroupID == sabo.GroupFinal {
		return nil
	}
	gid := m.GroupID
	completedStatus := sabo.MatchCompleted
	if len(s.registry.List(t.ID, registry.Filter{GroupID: &gid, Status: &completedStatus})) == 1 {
		if err := s.store.UpdateGroupStatus(t.ID, gid, sabo.GroupInProgress); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) onGroupCompleted(t *sabo.Tournament, groupID sabo.GroupID) error {
	if err := s.store.UpdateGroupStatus(t.ID, groupID, sabo.GroupCompleted); err != nil {
		return err
	}

	winner, runnerUp := s.groupPodium(t.ID, groupID)
	log.Info("Group completed", "tournamentID", t.ID, "group", groupID, "winner", winner, "runnerUp", runnerUp)

	// Notification and event failures are logged, not returned: the bracket
	// state is already durable and correct.
	if err := s.notifier.SendGroupCompleted(t.ID, groupID, winner, runnerUp, s.dryRun); err != nil {
		log.Error("Failed to send group completed notification", "error", err, "tournamentID", t.ID, "group", groupID)
	}
	if err := s.pubsub.SendMessage(pubsub.EventGroupCompleted, pubsub.GroupCompletedEvent{
		TournamentID: t.ID,
		GroupID:      string(groupID),
		Winner:       winner,
		RunnerUp:     runnerUp,
	}); err != nil {
		log.Error("Failed to publish group completed event", "error", err, "tournamentID", t.ID)
	}
	return nil
}

func (s *Service) tryUnlockFinal(t *sabo.Tournament) (bool, error) {
	// SaveMatches runs inside TryUnlock, between generation and registration,
	// so a storage failure leaves the registry without FINAL matches and the
	// next submission retries the whole unlock.
	finalMatches, created, err := s.coordinator.TryUnlock(t.ID, t.RaceTo, s.store.SaveMatches)
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	t.FinalStageCreated = true
	if err := s.store.UpdateTournament(t); err != nil {
		return false, err
	}
	s.metrics.IncFinalStagesUnlocked()

	q := finalQualifiers(finalMatches)
	if err := s.notifier.SendFinalUnlocked(t.ID, q, s.dryRun); err != nil {
		log.Error("Failed to send final unlocked notification", "error", err, "tournamentID", t.ID)
	}
	if err := s.pubsub.SendMessage(pubsub.EventFinalUnlocked, pubsub.FinalUnlockedEvent{
		TournamentID: t.ID,
		Qualifiers:   []string{q.WinnerA, q.RunnerUpA, q.WinnerB, q.RunnerUpB},
	}); err != nil {
		log.Error("Failed to publish final unlocked event", "error", err, "tournamentID", t.ID)
	}
	return true, nil
}

func (s *Service) onTournamentCompleted(t *sabo.Tournament, champion string) error {
	t.Status = sabo.TournamentCompleted
	if err := s.store.UpdateTournament(t); err != nil {
		return err
	}
	log.Info("Tournament completed", "tournamentID", t.ID, "champion", champion)

	if err := s.notifier.SendTournamentCompleted(t.ID, champion, s.dryRun); err != nil {
		log.Error("Failed to send tournament completed notification", "error", err, "tournamentID", t.ID)
	}
	if err := s.pubsub.SendMessage(pubsub.EventTournamentCompleted, pubsub.TournamentCompletedEvent{
		TournamentID: t.ID,
		Champion:     champion,
	}); err != nil {
		log.Error("Failed to publish tournament completed event", "error", err, "tournamentID", t.ID)
	}
	return nil
}

// GetState returns a full snapshot for read endpoints.
func (s *Service) GetState(tournamentID string) (*State, error) {
	t, err := s.ensureLoaded(tournamentID)
	if err != nil {
		return nil, err
	}

	matches := s.registry.List(tournamentID, registry.Filter{})
	state := &State{Tournament: t, Matches: matches}

	for _, groupID := range []sabo.GroupID{sabo.GroupA, sabo.GroupB, sabo.GroupFinal} {
		var total, completed int
		for _, m := range matches {
			if m.GroupID != groupID {
				continue
			}
			total++
			if m.Status == sabo.MatchCompleted {
				completed++
			}
		}
		if total == 0 {
			// The FINAL group does not exist until both groups finish.
			continue
		}
		status := sabo.GroupInProgress
		switch {
		case completed == total:
			status = sabo.GroupCompleted
		case completed == 0:
			status = sabo.GroupPending
		}
		state.Groups = append(state.Groups, GroupState{
			ID:               groupID,
			Status:           status,
			CompletedMatches: completed,
			TotalMatches:     total,
		})
	}

	if t.Status == sabo.TournamentCompleted {
		state.Champion = s.champion(tournamentID)
	}
	return state, nil
}

// ListReadyMatches returns matches that can accept a score right now.
func (s *Service) ListReadyMatches(tournamentID string, groupID *sabo.GroupID) ([]*sabo.Match, error) {
	if _, err := s.ensureLoaded(tournamentID); err != nil {
		return nil, err
	}
	return s.registry.ReadyMatches(tournamentID, groupID), nil
}

// LoadTournament rehydrates the registry from the durable store, replacing
// any in-memory state for the tournament.
func (s *Service) LoadTournament(tournamentID string) (*sabo.Tournament, error) {
	t, _, matches, err := s.store.LoadTournament(tournamentID)
	if err != nil {
		return nil, err
	}
	s.registry.Remove(tournamentID)
	if err := s.registry.Add(matches...); err != nil {
		return nil, err
	}
	log.Info("Tournament rehydrated", "tournamentID", tournamentID, "matches", len(matches))
	return t, nil
}

func (s *Service) ListTournaments() ([]*sabo.Tournament, error) {
	return s.store.ListTournaments()
}

// ensureLoaded returns the tournament record, rehydrating the registry from
// the store when the tournament is not in memory (e.g. after a restart).
func (s *Service) ensureLoaded(tournamentID string) (*sabo.Tournament, error) {
	if len(s.registry.List(tournamentID, registry.Filter{})) > 0 {
		return s.store.GetTournament(tournamentID)
	}
	return s.LoadTournament(tournamentID)
}

// groupPodium returns a completed group's grand-final winner and runner-up.
func (s *Service) groupPodium(tournamentID string, groupID sabo.GroupID) (winner, runnerUp string) {
	side := sabo.SideFinal
	for _, m := range s.registry.List(tournamentID, registry.Filter{GroupID: &groupID, Side: &side}) {
		return m.Winner(), m.Loser()
	}
	return "", ""
}

// champion returns the winner of the terminal final-stage match.
func (s *Service) champion(tournamentID string) string {
	gFinal := sabo.GroupFinal
	for _, m := range s.registry.List(tournamentID, registry.Filter{GroupID: &gFinal}) {
		if m.WinnerTo == nil && m.Status == sabo.MatchCompleted {
			return m.Winner()
		}
	}
	return ""
}

// finalQualifiers reconstructs the qualifier set from freshly generated
// final-stage matches. Semifinal 1 is A-winner vs B-runner-up, semifinal 2
// is B-winner vs A-runner-up.
func finalQualifiers(finalMatches []*sabo.Match) sabo.FinalQualifiers {
	var q sabo.FinalQualifiers
	for _, m := range finalMatches {
		if m.WinnerTo == nil {
			continue
		}
		switch m.MatchNumber {
		case 1:
			q.WinnerA, q.RunnerUpB = m.Player1, m.Player2
		case 2:
			q.WinnerB, q.RunnerUpA = m.Player1, m.Player2
		}
	}
	return q
}
