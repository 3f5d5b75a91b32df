package tutor

const TutorPersona = `You are Sensei, the AI tutor of an online Japanese course.
Answer in English unless the student writes to you in Japanese.
Keep answers short and concrete. Show Japanese examples with romaji in brackets.
Never mention that you are a language model and never invent the student's grades.`

const translatorInstruction = `You translate between English and Japanese.
Reply with the translation only, without notes or romaji.`

var categoryInstructions = map[Category]string{
	CategoryQA: `Answer the student's question directly, then give one short example sentence.`,

	CategoryGrammar: `Check the Japanese the student wrote.
List every mistake with the corrected form and a one-line reason.
If the sentence is already correct, say so and offer one more natural alternative.`,

	CategoryTranslation: `Translate the student's text and add a one-line note on any word that has no direct equivalent.`,

	CategorySummarization: `Summarize the text the student gives you in three or four plain sentences.
Keep Japanese terms in Japanese.`,

	CategoryGeneral: `Talk with the student naturally and steer the conversation back to their Japanese study.`,
}

// Фразы резервного ответчика. Никаких упоминаний провайдеров и ошибок.

const EmptyMessagePrompt = `Please type a question or a phrase you'd like help with, and I'll do my best to answer.`

const DefaultReply = `Sorry, I'm having trouble answering right now. Please try again in a moment.`

const greetingReply = `こんにちは! I'm your Japanese tutor.
I can answer questions about Japanese, check your grammar, translate short phrases and suggest what to study next.
What would you like to work on today?`

const specificQuestionReply = `I couldn't find a good answer to that one. Could you ask something more specific? For example:
- What is the difference between は and が?
- How do I make the て-form of a verb?
- When do I use に and when do I use で?`

const encouragementReply = `You're on a good track. Keep a steady routine: review one lesson a day and take a quiz whenever a topic starts to feel comfortable.`

const studyTipsReply = `A few things that help most learners:
- Study a little every day instead of a lot once a week.
- Read new words out loud and write them by hand.
- Take a quiz after each lesson to see what stuck.`

const commonPhrasesHeader = `I can't reach the translation service right now, so I can only translate a few common phrases offline:`

const commonPhrasesFooter = `Full sentence translation will be back once the translation service is configured again. If this keeps happening, please let the course team know.`

const waGaExplanation = `は (wa) and が (ga) both follow a noun, but they do different jobs.

- は marks the topic: what the sentence is about. 私は学生です (watashi wa gakusei desu) = "As for me, I'm a student."
- が marks the subject, often new or emphasised information. 誰が来ましたか (dare ga kimashita ka) = "Who came?" / 田中さんが来ました (Tanaka-san ga kimashita) = "Tanaka came."

Rule of thumb: question words (誰, 何, どこ) take が, and the answer keeps が. Use は when you're setting the scene or contrasting.`

const teFormExplanation = `The て-form links actions and builds many patterns (〜ています, 〜てください, 〜てもいい).

How to make it:
- る-verbs: drop る, add て. 食べる → 食べて (tabete)
- う-verbs ending in う/つ/る → って. 買う → 買って (katte)
- む/ぶ/ぬ → んで. 読む → 読んで (yonde)
- く → いて, ぐ → いで. 書く → 書いて (kaite), 泳ぐ → 泳いで (oyoide)
- す → して. 話す → 話して (hanashite)
- Exceptions: する → して, 来る → 来て (kite), 行く → 行って (itte)`

const niDeExplanation = `に (ni) and で (de) can both look like "at" or "in", but:

- に marks a point: where something exists, a destination, or a time. 部屋に猫がいます (heya ni neko ga imasu) = "There's a cat in the room."
- で marks where an action happens, or the means. 図書館で勉強します (toshokan de benkyou shimasu) = "I study at the library." / バスで行きます (basu de ikimasu) = "I go by bus."

Quick test: if the verb is いる/ある or a movement towards a place, use に. If it's an activity, use で.`
