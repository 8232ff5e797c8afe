package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/battle"
)

const emptyPartyMessage = "Add at least one card to your party before starting a battle."

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Battle Eco Snapper Gustavo with your party",
	Long: `Battle plays one interactive game against Eco Snapper Gustavo.
Pick a stat by name or number (1-5) each turn; q quits.`,
	Args: cobra.NoArgs,
	RunE: runBattle,
}

func runBattle(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		w := cmd.OutOrStdout()
		if len(a.store.Party()) == 0 {
			fmt.Fprintln(w, emptyPartyMessage)
			return nil
		}

		bus := events.NewBus()
		turns := make(chan struct{}, 1)
		bus.SubscribeFunc(battle.EventTurnResolved, 0, func(_ context.Context, _ events.Event) error {
			select {
			case turns <- struct{}{}:
			default:
			}
			return nil
		})

		session, err := a.battleSession(bus)
		if err != nil {
			return err
		}
		defer session.Close()

		state, err := session.Start(cmd.Context())
		if err != nil {
			return err
		}

		return playBattle(cmd.Context(), w, cmd.InOrStdin(), session, state, turns)
	})
}

func playBattle(ctx context.Context, w io.Writer, in io.Reader, session *battle.Session, state *battle.State, turns <-chan struct{}) error {
	scanner := bufio.NewScanner(in)
	for {
		printBattle(w, state)
		if state.Finished {
			return nil
		}

		fmt.Fprint(w, "Choose a stat: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "q") {
			fmt.Fprintln(w, "You fled the battle.")
			return nil
		}

		stat, ok := parseStat(input)
		if !ok {
			fmt.Fprintf(w, "Unknown stat %q.\n", input)
			continue
		}

		if _, err := session.PlayerMove(ctx, stat); err != nil {
			return err
		}

		next, err := waitForPlayerTurn(ctx, session, turns)
		if err != nil {
			return err
		}
		state = next
	}
}

// waitForPlayerTurn blocks until the opponent has answered or the battle ends
func waitForPlayerTurn(ctx context.Context, session *battle.Session, turns <-chan struct{}) (*battle.State, error) {
	for {
		state, ok := session.Snapshot()
		if !ok {
			return nil, errors.FailedPrecondition("battle was abandoned")
		}
		if state.Finished || state.Turn == battle.SidePlayer {
			return state, nil
		}

		select {
		case <-turns:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func parseStat(input string) (entities.StatKey, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(entities.StatKeys) {
			return "", false
		}
		return entities.StatKeys[n-1], true
	}

	for _, key := range entities.StatKeys {
		if strings.EqualFold(input, string(key)) || strings.EqualFold(input, key.Label()) {
			return key, true
		}
	}
	return "", false
}

func printBattle(w io.Writer, state *battle.State) {
	player, opponent := battle.Summary(state)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "You (%d): %s\n", len(player), strings.Join(player, ", "))
	fmt.Fprintf(w, "%s (%d): %s\n", battle.OpponentName, len(opponent), strings.Join(opponent, ", "))

	if card, ok := state.Player.Front(); ok {
		fmt.Fprintf(w, "In play: %s\n", card.Template.CommonName)
		for i, key := range entities.StatKeys {
			fmt.Fprintf(w, "  %d. %-13s %3d\n", i+1, key.Label(), card.Stats.Get(key))
		}
	}

	for i := len(state.Log) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "> %s\n", state.Log[i])
	}
}
