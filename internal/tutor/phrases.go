package tutor

import (
	"sort"
	"strings"
	"unicode/utf8"
)

type Phrase struct {
	English  string
	Japanese string
	Romaji   string
}

// offline dictionary for translation fallback
var commonPhrases = []Phrase{
	{"hello", "こんにちは", "konnichiwa"},
	{"good morning", "おはようございます", "ohayou gozaimasu"},
	{"good evening", "こんばんは", "konbanwa"},
	{"good night", "おやすみなさい", "oyasuminasai"},
	{"thank you", "ありがとうございます", "arigatou gozaimasu"},
	{"thanks", "ありがとう", "arigatou"},
	{"goodbye", "さようなら", "sayounara"},
	{"excuse me", "すみません", "sumimasen"},
	{"sorry", "ごめんなさい", "gomen nasai"},
	{"yes", "はい", "hai"},
	{"no", "いいえ", "iie"},
	{"please", "お願いします", "onegaishimasu"},
	{"nice to meet you", "はじめまして", "hajimemashite"},
	{"how are you", "お元気ですか", "ogenki desu ka"},
	{"i am hungry", "お腹が空きました", "onaka ga sukimashita"},
	{"i don't understand", "わかりません", "wakarimasen"},
	{"where is the station", "駅はどこですか", "eki wa doko desu ka"},
	{"how much is this", "これはいくらですか", "kore wa ikura desu ka"},
	{"delicious", "おいしい", "oishii"},
	{"water", "水", "mizu"},
	{"cheers", "乾杯", "kanpai"},
	{"let's eat", "いただきます", "itadakimasu"},
}

// Short entries like "no" or "はい" only match exactly; inside a sentence they are noise.
const (
	minPartialEnglish  = 4
	minPartialJapanese = 3
)

// phraseDict looks phrases up exactly first, then by the longest phrase found inside the text.
type phraseDict struct {
	byEnglish  map[string]Phrase
	byJapanese map[string]Phrase
	longest    []Phrase
}

func newPhraseDict(phrases []Phrase) *phraseDict {
	d := &phraseDict{
		byEnglish:  make(map[string]Phrase, len(phrases)),
		byJapanese: make(map[string]Phrase, len(phrases)),
		longest:    append([]Phrase(nil), phrases...),
	}
	for _, p := range phrases {
		d.byEnglish[p.English] = p
		d.byJapanese[p.Japanese] = p
	}
	sort.SliceStable(d.longest, func(i, j int) bool {
		return len(d.longest[i].English) > len(d.longest[j].English)
	})
	return d
}

func (d *phraseDict) Lookup(text string, dir Direction) (Phrase, bool) {
	key := normalizeForCompare(strings.Trim(text, `"'「」`))
	if key == "" {
		return Phrase{}, false
	}
	if dir == DirectionJpEn {
		if p, ok := d.byJapanese[key]; ok {
			return p, true
		}
		best, found := Phrase{}, false
		for _, p := range d.longest {
			if utf8.RuneCountInString(p.Japanese) < minPartialJapanese {
				continue
			}
			if strings.Contains(key, p.Japanese) && len(p.Japanese) > len(best.Japanese) {
				best, found = p, true
			}
		}
		return best, found
	}

	if p, ok := d.byEnglish[key]; ok {
		return p, true
	}
	for _, p := range d.longest {
		if len(p.English) < minPartialEnglish {
			continue
		}
		if containsWord(key, p.English) {
			return p, true
		}
	}
	return Phrase{}, false
}

// containsWord reports whether word occurs in s on ASCII word boundaries.
func containsWord(s, word string) bool {
	for from := 0; from <= len(s)-len(word); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(word)
		before := start == 0 || !isASCIIWordByte(s[start-1])
		after := end == len(s) || !isASCIIWordByte(s[end])
		if before && after {
			return true
		}
		from = start + 1
	}
	return false
}
