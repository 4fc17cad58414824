package bot

import (
	"fmt"
	"strings"

	"github.com/davronov/matchday/internal/matchdate"
	"github.com/davronov/matchday/internal/state"
	"github.com/davronov/matchday/internal/teams"
)

// User-facing texts. The bot speaks a single fixed locale (Russian); code
// and logs stay in English.
const (
	msgWelcome = "👋 *Добро пожаловать в Футбольный бот!*\n\n" +
		"Для управления ботом нужна авторизация:\n🔐 `/futbol login <логин> <пароль>`\n\n" +
		"После входа используйте `/futbol help` для просмотра всех команд."

	msgNotAdmin = "⛔ *Недостаточно прав.*\nВыполните `/futbol login <логин> <пароль>`"

	msgUnknownCommand = "🤔 Неизвестная команда. Используйте `/futbol help` для списка команд."

	msgLoginUsage    = "⚠️ Использование: `/futbol login <логин> <пароль>`"
	msgLoginRejected = "❌ Неверный логин или пароль!"
	msgLoginOK       = "✅ *Вход выполнен. Привет, админ!*\nИспользуй `/futbol help` для списка команд.\n_ID чата: %s_"
	msgLogout        = "👋 Вы вышли из системы. Напоминания отключены."

	msgAddPlayerUsage = "⚠️ *Использование:* `/futbol addplayer Имя`\n\n_Пример: /futbol addplayer Саша_"
	msgPlayerAdded    = "✅ *Игрок добавлен!*\n\n👤 *%s*\n📊 Всего игроков: *%d*"
	msgPlayerDuplicate = "⚠️ Игрок *«%s»* уже есть в списке!\n\n📋 Всего игроков: %d\n" +
		"Используйте `/futbol players` для просмотра списка"

	msgAddPlayersUsage = "⚠️ Использование: `/futbol addplayers Имя1, Имя2, Имя3`"

	msgRemovePlayerUsage = "⚠️ *Использование:* `/futbol removeplayer Имя`\n\n_Пример: /futbol removeplayer Саша_"
	msgPlayerNotFound    = "⚠️ Игрок *«%s»* не найден в списке!\n\nИспользуйте `/futbol players` для просмотра списка"
	msgPlayerRemoved     = "✅ *Игрок удалён!*\n\n👤 *%s*\n📊 Осталось игроков: *%d*"

	msgNoPlayers = "📋 *Список игроков пуст*\n\nДобавьте игроков:\n" +
		"• `/futbol addplayer Имя` - добавить одного\n" +
		"• `/futbol addplayers Имя1, Имя2, Имя3` - добавить несколько"
	msgPlayersCleared = "✅ Список игроков очищен."

	msgNotEnoughPlayers = "❌ Нужно минимум 2 игрока. Добавьте через `/futbol addplayer`."

	msgSetCaptainUsage = "⚠️ Использование: `/futbol setcaptain <1/2> <Имя>`"
	msgBadTeamNumber   = "⚠️ Номер команды должен быть 1 или 2"
	msgNotOnTeam       = "⚠️ Этого игрока нет в команде %d"
	msgCaptainsUpdated = "✅ *Капитаны обновлены:*\n🟢 %s  |  🔵 %s"

	msgSetDateUsage = "⚠️ Использование: `/futbol setdate ГГГГ-ММ-ДД ЧЧ:ММ`\n" +
		"Например: `/futbol setdate 2025-10-20 18:30`"
	msgBadDate         = "❌ Неверный формат! Используйте: ГГГГ-ММ-ДД ЧЧ:ММ"
	msgDateSet         = "📆 *Матч назначен на %s*"
	msgOfferSplit      = "🤔 Желаете распределить команды сейчас?"
	msgNeedPlayersHint = "⚠️ Добавьте игроков через `/futbol addplayer`"

	msgAnnounceNoDate  = "⚠️ Сначала назначьте дату через `/futbol setdate`"
	msgAnnounceNoTeams = "⚠️ Сначала распределите игроков через `/futbol split`"

	msgScoreUsage    = "⚠️ Использование: `/futbol score X-Y` (например: `/futbol score 3-2`)"
	msgBadScore      = "❌ Неверный формат счёта! Используйте: X-Y"
	msgScoreRecorded = "✅ *Счёт зафиксирован:* 🟢 %d — %d 🔵\n%s"
	msgTeam1Wins     = "🏆 Победила команда 1!"
	msgTeam2Wins     = "🏆 Победила команда 2!"
	msgDraw          = "🤝 Ничья!"

	msgNoHistory      = "📜 История матчей пуста."
	msgMatchUsage     = "⚠️ Использование: `/futbol match <номер>`"
	msgMatchNotFound  = "⚠️ Матч с таким номером не найден."
	msgMatchesCleared = "✅ История матчей очищена."

	msgRemindTimesUsage = "⚠️ Использование: `/futbol setremindtimes ЧЧ:ММ,ЧЧ:ММ`\n" +
		"Например: `/futbol setremindtimes 09:30,21:00`\n\nТекущее время: *%s*"
	msgBadRemindTime  = "❌ Неверный формат: %s. Используйте ЧЧ:ММ"
	msgRemindTimesSet = "✅ Время напоминаний обновлено: *%s*\n_Напоминания в чат ID: %s_"
)

const helpAdmin = "📋 *КОМАНДЫ БОТА (Админ)*\n\n" +
	"*👤 Управление игроками:*\n" +
	"`/futbol addplayer Имя` - добавить игрока\n" +
	"`/futbol addplayers Имя1, Имя2` - добавить несколько\n" +
	"`/futbol removeplayer Имя` - удалить игрока\n" +
	"`/futbol players` - список всех игроков\n" +
	"`/futbol clearplayers` - очистить весь список\n\n" +
	"*⚽ Формирование команд:*\n" +
	"`/futbol split` - случайное распределение\n" +
	"`/futbol setcaptain 1 Имя` - назначить капитана команды 1\n" +
	"`/futbol setcaptain 2 Имя` - назначить капитана команды 2\n\n" +
	"*📅 Управление матчем:*\n" +
	"`/futbol setdate ГГГГ-ММ-ДД ЧЧ:ММ` - назначить дату матча\n" +
	"`/futbol announce` - объявить матч в группе\n" +
	"`/futbol score X-Y` - записать результат матча\n\n" +
	"*📊 История:*\n" +
	"`/futbol history` - последние 10 матчей\n" +
	"`/futbol match номер` - детали конкретного матча\n" +
	"`/futbol clearmatches` - очистить всю историю\n\n" +
	"*⚙️ Настройки:*\n" +
	"`/futbol setremindtimes ЧЧ:ММ,ЧЧ:ММ` - время напоминаний\n" +
	"`/futbol logout` - выйти из системы\n" +
	"`/futbol help` - эта справка\n\n" +
	"_💡 Совет: Используйте команды в группе для уведомлений всех участников!_"

const helpGuest = "👋 *Добро пожаловать в Футбольный бот!*\n\n" +
	"Этот бот помогает организовывать футбольные матчи:\n" +
	"• 👥 Управление списком игроков\n" +
	"• ⚽ Автоматическое распределение команд\n" +
	"• 📅 Назначение времени матчей\n" +
	"• ⏰ Автоматические напоминания\n" +
	"• 📊 История всех матчей\n\n" +
	"*Для использования нужна авторизация:*\n🔐 `/futbol login <логин> <пароль>`\n\n" +
	"После входа используйте `/futbol help` для просмотра всех команд."

func captainName(c *string) string {
	if c == nil {
		return "Нет"
	}
	return *c
}

func formatAddPlayers(added, duplicates []string, total int) string {
	var b strings.Builder
	if len(added) > 0 {
		fmt.Fprintf(&b, "✅ *Добавлено игроков: %d*\n", len(added))
		for _, p := range added {
			fmt.Fprintf(&b, "• %s\n", p)
		}
	}
	if len(duplicates) > 0 {
		b.WriteString("\n⚠️ *Уже в списке:*\n")
		for _, p := range duplicates {
			fmt.Fprintf(&b, "• %s\n", p)
		}
	}
	fmt.Fprintf(&b, "\n*Всего игроков: %d*", total)
	return b.String()
}

func formatPlayerList(players []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Список игроков (%d):*\n\n", len(players))
	for i, p := range players {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		// A separator every 20 names keeps long rosters readable.
		if (i+1)%20 == 0 && i+1 < len(players) {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n_Для распределения команд используйте /futbol split_")
	return b.String()
}

func formatTeamLines(b *strings.Builder, players []string, captain *string, mark string) {
	for _, p := range players {
		if captain != nil && p == *captain {
			fmt.Fprintf(b, "• %s%s\n", p, mark)
		} else {
			fmt.Fprintf(b, "• %s\n", p)
		}
	}
}

func formatSplit(split teams.Split) string {
	var b strings.Builder
	b.WriteString("⚽ *Рандомное распределение:*\n\n")
	b.WriteString("🟢 *Команда 1:*\n")
	formatTeamLines(&b, split.Team1, &split.Captain1, " 👑")
	b.WriteString("\n🔵 *Команда 2:*\n")
	formatTeamLines(&b, split.Team2, &split.Captain2, " 👑")
	if split.Substitute != "" {
		fmt.Fprintf(&b, "\n⚠️ Запасной: *%s*\n", split.Substitute)
	}
	fmt.Fprintf(&b, "\n*Капитаны:*\n🟢 %s  |  🔵 %s", split.Captain1, split.Captain2)
	return b.String()
}

func formatAnnounce(snap state.AppState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚽ *Следующий матч состоится %s!*\n\n", matchdate.FormatISO(snap.MatchDate))
	b.WriteString("🟢 *Команда 1:*\n")
	formatTeamLines(&b, snap.Team1, snap.Captain1, " (капитан)")
	b.WriteString("\n🔵 *Команда 2:*\n")
	formatTeamLines(&b, snap.Team2, snap.Captain2, " (капитан)")
	b.WriteString("\n⚽ Всем удачи!")
	return b.String()
}

func formatHistory(matches []state.MatchRecord) string {
	var b strings.Builder
	b.WriteString("📜 *История матчей (последние 10):*\n\n")

	shown := 10
	if len(matches) < shown {
		shown = len(matches)
	}
	for i := 0; i < shown; i++ {
		idx := len(matches) - i
		m := matches[idx-1]
		fmt.Fprintf(&b, "#%d (%s) — 🟢%d:%d🔵 (К1: %s | К2: %s)\n",
			idx, matchdate.FormatISODay(m.Date), m.Score1, m.Score2,
			captainName(m.Captain1), captainName(m.Captain2))
	}
	return b.String()
}

func formatMatchDetails(num int, m state.MatchRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 *Матч №%d — %s*\n\n", num, matchdate.FormatISO(m.Date))
	fmt.Fprintf(&b, "🟢 *Команда 1* (капитан: %s)\n", captainName(m.Captain1))
	for _, p := range m.Team1 {
		fmt.Fprintf(&b, "• %s\n", p)
	}
	fmt.Fprintf(&b, "\n🔵 *Команда 2* (капитан: %s)\n", captainName(m.Captain2))
	for _, p := range m.Team2 {
		fmt.Fprintf(&b, "• %s\n", p)
	}
	fmt.Fprintf(&b, "\n🏁 *Счёт:* %d — %d", m.Score1, m.Score2)
	return b.String()
}
