/* normalize.go
 * Contains the logic for normalizing user input into canonical picks
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"pool-bot/api/shared"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CheckTeamNames processes team names from user input and checks if they are valid.
// Preconditions: receives two string slices; one containing the user's teams and another that is a list of valid team names
// Postconditions: returns two string slices, a slice of canonically formatted team names and a slice containing the invalid team names
func CheckTeamNames(inputTeams []string, validTeams []string) ([]string, []string) {
	var formattedTeamNames []string
	var invalidTeams []string

	// Convert validTeams to lowercase for better matching
	lookup := make(map[string]string)
	var validTeamsLower []string
	for _, name := range validTeams {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validTeamsLower = append(validTeamsLower, lower)
	}

	// Match team names
	for _, team := range inputTeams {
		lowerTeam := strings.ToLower(team)
		fuzzyResults := fuzzy.RankFind(lowerTeam, validTeamsLower)
		// If there is no valid team name, add it to the invalid teams list
		if len(fuzzyResults) == 0 {
			invalidTeams = append(invalidTeams, team)
			continue
		} else if len(fuzzyResults) == 1 {
			formattedTeamNames = append(formattedTeamNames, lookup[fuzzyResults[0].Target]) // Append the original team name, not the lowercase one
		} else { // If there are multiple matches, check to see if theres an exact match with the input
			temp := ""
			for i := range fuzzyResults {
				if fuzzyResults[i].Target == lowerTeam {
					temp = fuzzyResults[i].Target
				}
			}
			// If no exact match was found, take the best ranked match
			if temp == "" {
				sort.Sort(fuzzyResults)
				temp = fuzzyResults[0].Target
			}
			formattedTeamNames = append(formattedTeamNames, lookup[temp])
		}
	}
	return formattedTeamNames, invalidTeams
}

// WeekTeams lists the canonical team names playing in a week's game map.
// Preconditions: Receives the week's game map
// Postconditions: Returns the team names sorted alphabetically
func WeekTeams(games map[string]shared.Game) []string {
	var teams []string
	for _, game := range games {
		teams = append(teams, game.AwayTeam, game.HomeTeam)
	}
	sort.Strings(teams)
	return teams
}

// FindGameForTeam locates the game a team plays in within a single week's
// game map.
func FindGameForTeam(games map[string]shared.Game, team string) (shared.Game, bool) {
	for _, game := range games {
		if game.AwayTeam == team || game.HomeTeam == team {
			return game, true
		}
	}
	return shared.Game{}, false
}

// BuildPicks converts an ordered team list into a canonical pick map. The
// first team is the most confident and receives confidence N; the last
// receives 1, so the confidence values always form a permutation of 1..N.
// Preconditions: Receives canonical team names (most confident first) and the week's game map
// Postconditions: Returns a pick map keyed by game id, or an error if a team is repeated,
// two teams map to the same game, or a team is not playing this week
func BuildPicks(teams []string, games map[string]shared.Game) (map[string]shared.Pick, error) {
	picks := make(map[string]shared.Pick, len(teams))
	seen := make(map[string]bool, len(teams))

	for i, team := range teams {
		if seen[team] {
			return nil, fmt.Errorf("'%s' entered multiple times", team)
		}
		seen[team] = true

		game, ok := FindGameForTeam(games, team)
		if !ok {
			return nil, fmt.Errorf("'%s' is not playing this week", team)
		}
		if _, dup := picks[game.GameID]; dup {
			return nil, fmt.Errorf("both teams of game %s were picked", game.GameID)
		}

		confidence := len(teams) - i
		picks[game.GameID] = shared.Pick{
			GameID:     game.GameID,
			Team:       team,
			Confidence: &confidence,
		}
	}

	return picks, nil
}
