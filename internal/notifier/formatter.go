package notifier

import (
	"fmt"
	"strings"

	"TrendSentry/internal/model"
)

var actionEmoji = map[model.Action]string{
	model.ActionBuy:  "🟢",
	model.ActionSell: "🔴",
	model.ActionHold: "⏸",
}

// FormatDecisionReport formats one strategy cycle outcome into a
// Telegram message: the triggering date, latest close, the decision
// with its levels, the indicator snapshot, and the index context.
func FormatDecisionReport(symbol string, row model.IndicatorRow, d *model.Decision,
	before, after model.PositionState, indexSymbol string, indexClose, indexMA20 float64) string {

	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>TrendSentry</b> | %s | %s\n\n",
		actionEmoji[d.Action], symbol, row.Time.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("收盘价: %.2f\n", row.Close))
	b.WriteString(fmt.Sprintf("操作指令: <b>%s</b>\n", d.Action))
	b.WriteString(fmt.Sprintf("执行价格: %.2f\n", d.Price))
	if d.StopLoss > 0 {
		b.WriteString(fmt.Sprintf("止损价位: %.2f\n", d.StopLoss))
	}
	if d.Target > 0 {
		b.WriteString(fmt.Sprintf("目标价位: %.2f\n", d.Target))
	}
	b.WriteString(fmt.Sprintf("逻辑说明: %s\n\n", d.Reason))

	b.WriteString("📈 <b>指标快照:</b>\n")
	b.WriteString(fmt.Sprintf("  MA5 %.2f | MA20 %.2f | MA60 %.2f\n", row.MA5, row.MA20, row.MA60))
	b.WriteString(fmt.Sprintf("  RSI %.0f | ATR %.2f\n", row.RSI, row.ATR))
	b.WriteString(fmt.Sprintf("  Pivot %.2f | S1 %.2f | R1 %.2f\n", row.Pivot, row.S1, row.R1))

	if indexClose > 0 {
		b.WriteString(fmt.Sprintf("\n🌐 大盘 %s: %.2f", indexSymbol, indexClose))
		if indexMA20 > 0 {
			b.WriteString(fmt.Sprintf(" (MA20 %.2f)", indexMA20))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n持仓: %s → %s", before.Position, after.Position))
	if after.Position == model.PositionLong {
		b.WriteString(fmt.Sprintf(" @ %.2f", after.LastTradePrice))
	}
	b.WriteString("\n")

	return b.String()
}

// FormatPositionStatus formats the current position for the /position command.
func FormatPositionStatus(state model.PositionState) string {
	var b strings.Builder
	b.WriteString("📦 <b>持仓状态</b>\n\n")
	b.WriteString(fmt.Sprintf("状态: %s\n", state.Position))
	if state.Position == model.PositionLong {
		b.WriteString(fmt.Sprintf("入场价格: %.2f\n", state.LastTradePrice))
	}
	if !state.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("更新时间: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatTradeLog formats recent trade log entries for the /log command.
func FormatTradeLog(entries []model.TradeLogEntry) string {
	if len(entries) == 0 {
		return "📒 交易记录为空"
	}
	var b strings.Builder
	b.WriteString("📒 <b>交易记录</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %s %.2f (此前 %s)\n",
			e.Time.Format("01-02 15:04"), e.Action, e.Price, e.PositionBefore))
	}
	return b.String()
}
