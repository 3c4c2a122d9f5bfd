package protocol

import (
	"fmt"
	"strconv"
)

// Delimiter terminates every outbound and inbound record.
const Delimiter = "\n"

// CommandType enumerates client to server commands.
type CommandType byte

const (
	CommandJoin       CommandType = 1
	CommandReady      CommandType = 2
	CommandPlay       CommandType = 3
	CommandChopsticks CommandType = 4
)

var CommandTypeDictionary = map[CommandType]string{
	CommandJoin:       "JOIN",
	CommandReady:      "READY",
	CommandPlay:       "PLAY",
	CommandChopsticks: "CHOPSTICKS",
}

func (t CommandType) String() string {
	if s, ok := CommandTypeDictionary[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Command is an outbound line.
type Command struct {
	Type       CommandType
	GameID     string
	PlayerName string
	Index      int
	Second     int
}

func Join(gameID, playerName string) Command {
	return Command{Type: CommandJoin, GameID: gameID, PlayerName: playerName}
}

func Ready() Command { return Command{Type: CommandReady} }

func Play(index int) Command { return Command{Type: CommandPlay, Index: index} }

func Chopsticks(first, second int) Command {
	return Command{Type: CommandChopsticks, Index: first, Second: second}
}

// String renders the command without the record delimiter.
func (c Command) String() string {
	switch c.Type {
	case CommandJoin:
		return fmt.Sprintf("JOIN %s %s", c.GameID, c.PlayerName)
	case CommandReady:
		return "READY"
	case CommandPlay:
		return "PLAY " + strconv.Itoa(c.Index)
	case CommandChopsticks:
		return fmt.Sprintf("CHOPSTICKS %d %d", c.Index, c.Second)
	default:
		return ""
	}
}

// IsPlay reports whether the command is a PLAY or CHOPSTICKS move.
func (c Command) IsPlay() bool {
	return c.Type == CommandPlay || c.Type == CommandChopsticks
}

// Encode renders the command including the record delimiter.
func (c Command) Encode() []byte {
	return []byte(c.String() + Delimiter)
}
