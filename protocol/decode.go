package protocol

import (
	"regexp"
	"strconv"
	"strings"

	"sushigo-lite/card"
)

// slotDelimiter matches "<digits>:" at the start of the payload or after whitespace.
var slotDelimiter = regexp.MustCompile(`(?:^|\s)(\d+):`)

// Decode parses one received line (record delimiter already removed).
func Decode(line string) (Message, error) {
	line = strings.TrimSpace(strings.ToValidUTF8(line, "\uFFFD"))
	if line == "" {
		return Message{}, ErrEmptyLine
	}

	head, rest := splitHead(line)
	kind, ok := kindsByPrefix[head]
	if !ok {
		return Message{Kind: KindUnknown, Raw: line}, nil
	}
	msg := Message{Kind: kind, Raw: line}

	switch kind {
	case KindWelcome:
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			return msg, &DecodeError{Kind: kind, Line: line, Reason: "expected game id and player id"}
		}
		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			return msg, &DecodeError{Kind: kind, Line: line, Reason: "player id is not a number"}
		}
		msg.GameID = fields[0]
		msg.PlayerID = pid
	case KindError:
		msg.Reason = rest
	case KindHand:
		slots, err := ParseHandPayload(rest)
		if err != nil {
			return msg, &DecodeError{Kind: kind, Line: line, Reason: err.Error()}
		}
		msg.Slots = slots
	case KindRoundStart:
		fields := strings.Fields(rest)
		if len(fields) < 1 {
			return msg, &DecodeError{Kind: kind, Line: line, Reason: "missing round number"}
		}
		round, err := strconv.Atoi(fields[0])
		if err != nil {
			return msg, &DecodeError{Kind: kind, Line: line, Reason: "round is not a number"}
		}
		msg.Round = round
	case KindOK:
		msg.Text = rest
	}
	return msg, nil
}

// ParseHandPayload splits "0:Tempura 1:Maki Roll (2)" into slots. A card name
// runs until the next "<digits>:" token or the end of the payload.
func ParseHandPayload(payload string) ([]Slot, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return []Slot{}, nil
	}
	locs := slotDelimiter.FindAllStringSubmatchIndex(payload, -1)
	if len(locs) == 0 || strings.TrimSpace(payload[:locs[0][0]]) != "" {
		return nil, errMalformedHand
	}

	slots := make([]Slot, 0, len(locs))
	for i, loc := range locs {
		idx, err := strconv.Atoi(payload[loc[2]:loc[3]])
		if err != nil {
			return nil, errMalformedHand
		}
		end := len(payload)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		name := strings.TrimSpace(payload[loc[1]:end])
		c, _ := card.Parse(name)
		slots = append(slots, Slot{Index: idx, Name: name, Card: c})
	}
	return slots, nil
}

func splitHead(line string) (string, string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}
