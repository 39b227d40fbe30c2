/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"pool-bot/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.mongodb.org/mongo-driver/mongo"
)

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Pool Bot v1.0\n")
	res.WriteString("`$picks week team1 ... teamN`: Sets your confidence picks for a week. List one team per game, most confident first: the first team is worth N points, the last is worth 1\n")
	res.WriteString("There is fuzzy matching on names, however you should try and have a close match for the best results. Names that contain two or more words need to be encased in \" (e.g. \"Green Bay Packers\")\n")
	res.WriteString("`$survivor week team`: Sets your survivor pick for a week. Each team can only be used once per season\n")
	res.WriteString("`$check week`: shows the current status of your confidence picks for a week\n")
	res.WriteString("`$survivorstatus`: shows whether you are still alive in the survivor pool and your pick history\n")
	res.WriteString("`$leaderboard [week]`: shows the standings for a week, or the season standings when no week is given\n")
	res.WriteString("`$games week`: shows the schedule and results for a week\n")
	res.WriteString("`$score week`: re-syncs a week from the results provider, scores it and regenerates the leaderboards\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// setPicksHandler handles the $picks command with a DiscordSession interface
func (b *Bot) setPicksHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	// we use splitter here instead of go's built in splitter because now we can have team names that
	// contain spaces e.g. "Green Bay Packers" recognised as one team not three
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	msg, _ := spaceSplitter.Split(message.Content)
	if len(msg) < 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$picks week team1 ... teamN`")
		return
	}

	week, err := strconv.Atoi(msg[1])
	if err != nil || week <= 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a valid week number", msg[1]))
		return
	}

	res := fmt.Sprintf("%s's week %d picks have been updated\n", user.Username, week)
	err = b.APIPtr.SetUserPicks(user, week, msg[2:])
	if err != nil {
		log.Println(err)
		res = fmt.Sprintf("An error occured setting %s's picks: %s", user.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// setSurvivorHandler handles the $survivor command with a DiscordSession interface
func (b *Bot) setSurvivorHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	msg, _ := spaceSplitter.Split(message.Content)
	if len(msg) != 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$survivor week team`")
		return
	}

	week, err := strconv.Atoi(msg[1])
	if err != nil || week <= 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a valid week number", msg[1]))
		return
	}

	res := fmt.Sprintf("%s's week %d survivor pick has been updated\n", user.Username, week)
	err = b.APIPtr.SetSurvivorPick(user, week, msg[2])
	if err != nil {
		log.Println(err)
		res = fmt.Sprintf("An error occured setting %s's survivor pick: %s", user.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// checkPicksHandler handles the $check command with a DiscordSession interface
func (b *Bot) checkPicksHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	fields := strings.Fields(message.Content)
	if len(fields) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$check week`")
		return
	}

	week, err := strconv.Atoi(fields[1])
	if err != nil || week <= 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a valid week number", fields[1]))
		return
	}

	res, err := b.APIPtr.CheckPicks(user, week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || strings.Contains(err.Error(), "no picks found") {
			res = fmt.Sprintf("%s does not have any picks stored for week %d. Use $picks to set them\n", user.Username, week)
		} else {
			log.Println(err)
			res = fmt.Sprintf("An error occured checking %s's picks", user.Username)
		}
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// survivorStatusHandler handles the $survivorstatus command with a DiscordSession interface
func (b *Bot) survivorStatusHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	res, err := b.APIPtr.CheckSurvivor(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || strings.Contains(err.Error(), "no survivor record") {
			res = fmt.Sprintf("%s does not have a survivor record yet. Use $survivor to set a pick\n", user.Username)
		} else {
			log.Println(err)
			res = fmt.Sprintf("An error occured checking %s's survivor status", user.Username)
		}
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command with a DiscordSession interface
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	// No week argument means the season-cumulative view
	week := 0
	fields := strings.Fields(message.Content)
	if len(fields) > 1 {
		parsed, err := strconv.Atoi(fields[1])
		if err != nil || parsed <= 0 {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a valid week number", fields[1]))
			return
		}
		week = parsed
	}

	res, err := b.APIPtr.GetLeaderboard(week)
	if err != nil {
		log.Println(err)
		res = "An error occurred getting the leaderboard"
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// gamesHandler handles the $games command with a DiscordSession interface
func (b *Bot) gamesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	fields := strings.Fields(message.Content)
	if len(fields) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$games week`")
		return
	}

	week, err := strconv.Atoi(fields[1])
	if err != nil || week <= 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a valid week number", fields[1]))
		return
	}

	gameMap, err := b.APIPtr.Store.GetWeekGames(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No games stored for week %d", week))
		} else {
			log.Println(err)
			session.ChannelMessageSend(message.ChannelID, "An error occured getting the games list")
		}
		return
	}

	games := make([]shared.Game, 0, len(gameMap))
	for _, game := range gameMap {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].Kickoff != games[j].Kickoff {
			return games[i].Kickoff < games[j].Kickoff
		}
		return games[i].GameID < games[j].GameID
	})

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Week %d games:\n", week))
	for _, game := range games {
		if game.Status == shared.StatusFinal {
			res.WriteString(fmt.Sprintf("- %s %d @ %d %s [Final]\n", game.AwayTeam, game.AwayScore, game.HomeScore, game.HomeTeam))
		} else {
			res.WriteString(fmt.Sprintf("- %s @ %s: <t:%d>\n", game.AwayTeam, game.HomeTeam, game.Kickoff))
		}
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// scoreWeekHandler handles the $score command with a DiscordSession interface.
// Runs the full pipeline for a week: provider sync, confidence scoring, survivor
// evaluation, then leaderboard regeneration
func (b *Bot) scoreWeekHandler(session DiscordSession, message *discordgo.MessageCreate) {
	fields := strings.Fields(message.Content)
	if len(fields) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$score week`")
		return
	}

	week, err := strconv.Atoi(fields[1])
	if err != nil || week <= 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("'%s' is not a valid week number", fields[1]))
		return
	}

	summary, err := b.APIPtr.RunWeekPipeline(context.Background(), week)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured scoring week %d: %s", week, err))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Week %d scored: %d members updated\n", week, summary.Scored))
	for _, flag := range summary.Flags {
		res.WriteString(fmt.Sprintf("- data discrepancy: %s\n", flag))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler. $survivorstatus must be matched before
	// $survivor because the latter is a prefix of the former
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$picks"):
		b.setPicksHandler(session, message)

	case startsWith(message.Content, "$survivorstatus"):
		b.survivorStatusHandler(session, message)

	case startsWith(message.Content, "$survivor"):
		b.setSurvivorHandler(session, message)

	case startsWith(message.Content, "$check"):
		b.checkPicksHandler(session, message)

	case startsWith(message.Content, "$score"):
		b.scoreWeekHandler(session, message)

	case startsWith(message.Content, "$leaderboard"):
		b.leaderboardHandler(session, message)

	case startsWith(message.Content, "$games"):
		b.gamesHandler(session, message)
	}
}
