package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wayfare/models"
	"wayfare/services/intelligence"
	"wayfare/services/planner"
	recsService "wayfare/services/recs"
	"wayfare/utils"

	"go.uber.org/zap"
)

// clarifyPrompts are fixed per-language templates for clarifying turns, so
// those turns stay cheap and deterministic: no model call is made.
var clarifyPrompts = map[models.NextAction]map[string]string{
	models.ActionAskForDestination: {
		"en": "Where would you like to go?",
		"es": "¿A dónde te gustaría ir?",
		"fr": "Où aimeriez-vous aller ?",
		"de": "Wohin möchten Sie reisen?",
		"pt": "Para onde você gostaria de ir?",
	},
	models.ActionAskForDates: {
		"en": "When are you planning to travel?",
		"es": "¿Cuándo planeas viajar?",
		"fr": "Quand comptez-vous voyager ?",
		"de": "Wann möchten Sie verreisen?",
		"pt": "Quando você pretende viajar?",
	},
	models.ActionAskForGuests: {
		"en": "How many people are traveling?",
		"es": "¿Cuántas personas viajan?",
		"fr": "Combien de personnes voyagent ?",
		"de": "Wie viele Personen reisen?",
		"pt": "Quantas pessoas vão viajar?",
	},
}

var clarifyInputs = map[models.NextAction]models.InputDescriptor{
	models.ActionAskForDestination: {Type: "text", ID: "destination", Required: true},
	models.ActionAskForDates:       {Type: "daterange", ID: "dates", Required: false},
	models.ActionAskForGuests:      {Type: "guests", ID: "guests", Required: false},
}

var lockedNotices = map[string]string{
	"en": "You have a booking in progress; finish or cancel it before starting a new search.",
	"es": "Tienes una reserva en curso; termínala o cancélala antes de buscar de nuevo.",
	"fr": "Une réservation est en cours ; terminez-la ou annulez-la avant de relancer une recherche.",
	"de": "Eine Buchung läuft bereits; schließen Sie sie ab, bevor Sie neu suchen.",
	"pt": "Você tem uma reserva em andamento; conclua ou cancele antes de buscar novamente.",
}

// RenderInput is everything the renderer may draw on for one turn.
type RenderInput struct {
	State         *models.ConversationState
	Plan          *models.Plan
	Outcome       planner.Outcome
	Messages      []models.ChatMessage
	LatestMessage string
	Inventory     *models.Inventory
	Recs          *recsService.Result
	Itinerary     *models.TripPlan
}

// Renderer turns a computed turn outcome into reply text and UI affordances.
type Renderer struct {
	Replier         intelligence.ReplyGenerator
	DefaultLanguage string
	ReplyTimeout    time.Duration
}

// Render never fails: when the reply service is unavailable it falls back
// to templated text so the turn still completes.
func (r *Renderer) Render(ctx context.Context, in RenderInput) (models.AssistantReply, []string, models.UIPayload) {
	planLang := ""
	if in.Plan != nil {
		planLang = in.Plan.Language
	}
	lang := DetectLanguage(in.LatestMessage, planLang, r.DefaultLanguage)

	var ui models.UIPayload
	var reply models.AssistantReply
	var followUps []string

	// Clarifying turns are templated, not generated.
	if prompt, ok := clarifyPrompts[in.Outcome.NextAction]; ok {
		reply.Text = textForLang(prompt, lang)
		ui.Inputs = append(ui.Inputs, clarifyInputs[in.Outcome.NextAction])
		ui.Chips = buildChips(followUps)
		return reply, followUps, ui
	}

	if in.Inventory != nil {
		ui.Cards = append(ui.Cards, in.Inventory.Homes...)
		ui.Cards = append(ui.Cards, in.Inventory.Hotels...)
	}
	if in.Recs != nil {
		for _, g := range in.Recs.Groups {
			ui.Sections = append(ui.Sections, models.UISection{
				ID: g.ID, Title: g.Title, Items: g.Items,
			})
		}
	}
	// Missing-slot affordances accompany results instead of blocking them.
	for _, slot := range in.Outcome.Missing {
		switch slot {
		case planner.SlotDates:
			ui.Inputs = append(ui.Inputs, clarifyInputs[models.ActionAskForDates])
		case planner.SlotGuests:
			ui.Inputs = append(ui.Inputs, clarifyInputs[models.ActionAskForGuests])
		}
	}

	if in.Outcome.PolicyNotice == planner.PolicyNoticeBookingLocked {
		reply.Disclaimers = append(reply.Disclaimers, textForLang(lockedNotices, lang))
	}

	if r.Replier != nil {
		timeout := r.ReplyTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		genCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var trip *models.TripContext
		if in.State != nil {
			trip = in.State.Trip
		}
		result, err := r.Replier.Generate(genCtx, intelligence.ReplyRequest{
			Plan:      in.Plan,
			Messages:  in.Messages,
			Inventory: in.Inventory,
			Trip:      trip,
			Language:  lang,
		})
		if err == nil && result != nil && result.Reply != "" {
			reply.Text = result.Reply
			reply.Tone = "friendly"
			followUps = result.FollowUps
			ui.Chips = buildChips(followUps)
			return reply, followUps, ui
		}
		if err != nil {
			utils.GetLogger().Warn("reply generation failed, using fallback text", zap.Error(err))
		}
	}

	reply.Text = fallbackReply(in, lang)
	followUps = fallbackFollowUps(in, lang)
	ui.Chips = buildChips(followUps)
	return reply, followUps, ui
}

func textForLang(m map[string]string, lang string) string {
	if t, ok := m[lang]; ok {
		return t
	}
	return m["en"]
}

// buildChips derives deterministic chip ids from labels: uppercased with
// every non-alphanumeric run collapsed to one underscore, with a positional
// fallback for labels that normalize to nothing.
func buildChips(labels []string) []models.Chip {
	if len(labels) == 0 {
		return nil
	}
	chips := make([]models.Chip, 0, len(labels))
	for i, label := range labels {
		id := chipID(label)
		if id == "" {
			id = fmt.Sprintf("CHIP_%d", i)
		}
		chips = append(chips, models.Chip{ID: id, Label: label})
	}
	return chips
}

func chipID(label string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToUpper(label) {
		switch {
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(sb.String(), "_")
}

var fallbackSearchReplies = map[string]string{
	"en": "Here is what I found for your trip.",
	"es": "Esto es lo que encontré para tu viaje.",
	"fr": "Voici ce que j'ai trouvé pour votre voyage.",
	"de": "Das habe ich für Ihre Reise gefunden.",
	"pt": "Aqui está o que encontrei para a sua viagem.",
}

var fallbackEmptyReplies = map[string]string{
	"en": "I couldn't find matching stays right now. Try adjusting dates or budget.",
	"es": "No encontré alojamientos por ahora. Prueba con otras fechas o presupuesto.",
	"fr": "Je n'ai pas trouvé d'hébergement pour l'instant. Essayez d'autres dates ou un autre budget.",
	"de": "Ich habe gerade keine passenden Unterkünfte gefunden. Versuchen Sie andere Daten oder ein anderes Budget.",
	"pt": "Não encontrei acomodações no momento. Tente outras datas ou outro orçamento.",
}

var fallbackTripReplies = map[string]string{
	"en": "Here are some picks near your stay.",
	"es": "Aquí tienes algunas recomendaciones cerca de tu alojamiento.",
	"fr": "Voici quelques suggestions près de votre hébergement.",
	"de": "Hier sind einige Empfehlungen in der Nähe Ihrer Unterkunft.",
	"pt": "Aqui estão algumas sugestões perto da sua acomodação.",
}

var fallbackChatReplies = map[string]string{
	"en": "I can help you find stays, plan trip days, and check what's nearby. Where to?",
	"es": "Puedo ayudarte a encontrar alojamiento y planear tu viaje. ¿A dónde vamos?",
	"fr": "Je peux vous aider à trouver un hébergement et organiser votre voyage. On va où ?",
	"de": "Ich helfe Ihnen, Unterkünfte zu finden und Reisetage zu planen. Wohin soll es gehen?",
	"pt": "Posso ajudar a encontrar acomodações e planejar sua viagem. Para onde vamos?",
}

func fallbackReply(in RenderInput, lang string) string {
	switch in.Outcome.NextAction {
	case models.ActionRunSearch:
		if in.Inventory != nil && (len(in.Inventory.Homes) > 0 || len(in.Inventory.Hotels) > 0) {
			return textForLang(fallbackSearchReplies, lang)
		}
		return textForLang(fallbackEmptyReplies, lang)
	case models.ActionRunTrip:
		text := textForLang(fallbackTripReplies, lang)
		if in.Recs != nil && in.Recs.Weather != nil {
			text += fmt.Sprintf(" (%.0f°C)", in.Recs.Weather.Current.TemperatureC)
		}
		return text
	default:
		return textForLang(fallbackChatReplies, lang)
	}
}

var fallbackFollowUpSets = map[string][]string{
	"en": {"Cheapest first", "Show more options", "What's the weather?"},
	"es": {"Más baratos primero", "Ver más opciones", "¿Qué tiempo hace?"},
	"fr": {"Les moins chers d'abord", "Plus d'options", "Quel temps fait-il ?"},
	"de": {"Günstigste zuerst", "Mehr Optionen", "Wie ist das Wetter?"},
	"pt": {"Mais baratos primeiro", "Mais opções", "Como está o tempo?"},
}

func fallbackFollowUps(in RenderInput, lang string) []string {
	if in.Outcome.NextAction != models.ActionRunSearch {
		return nil
	}
	if set, ok := fallbackFollowUpSets[lang]; ok {
		return set
	}
	return fallbackFollowUpSets["en"]
}
