package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionPlay   = "play"
	actionAnswer = "answer"
	actionHome   = "home"
	actionStats  = "stats"
	actionReset  = "reset"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerRef identifies the button a player pressed under a question.
type answerRef struct {
	Generation uint64 // round the question belongs to
	Cursor     int    // 0-based question index in the round
	Option     int    // index into the question options
}

func buildPlayCallback(category entities.Category) string {
	return callbackData{
		Action: actionPlay,
		Params: []string{category.String()},
	}.encode()
}

// buildAnswerCallback builds callback data for one answer button.
func buildAnswerCallback(generation uint64, cursor, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.FormatUint(generation, 10),
			strconv.Itoa(cursor),
			strconv.Itoa(option),
		},
	}.encode()
}

func buildHomeCallback() string {
	return actionHome
}

func buildStatsCallback() string {
	return actionStats
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}

// parsePlay extracts the category of a play callback.
func parsePlay(cd callbackData) (entities.Category, bool) {
	if cd.Action != actionPlay || len(cd.Params) != 1 {
		return "", false
	}

	category, err := entities.ParseCategory(cd.Params[0])
	if err != nil {
		return "", false
	}
	return category, true
}

// parseAnswer extracts the answer reference of an answer callback.
func parseAnswer(cd callbackData) (answerRef, bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 {
		return answerRef{}, false
	}

	gen, err1 := strconv.ParseUint(cd.Params[0], 10, 64)
	cursor, err2 := strconv.Atoi(cd.Params[1])
	option, err3 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil || err3 != nil || cursor < 0 || option < 0 {
		return answerRef{}, false
	}

	return answerRef{Generation: gen, Cursor: cursor, Option: option}, true
}
