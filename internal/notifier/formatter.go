package notifier

import (
	"fmt"
	"strings"
	"time"

	"VaultSentinel/internal/engine"
	"VaultSentinel/internal/model"

	"github.com/dustin/go-humanize"
)

func amount(v uint64) string {
	return humanize.Comma(int64(v))
}

// FormatVaultStatus formats the current vault snapshot for display.
func FormatVaultStatus(st engine.VaultStatus) string {
	var b strings.Builder
	b.WriteString("🏦 <b>Vault status</b>\n\n")
	b.WriteString(fmt.Sprintf("Balance: %s\n", amount(st.Balance)))
	b.WriteString(fmt.Sprintf("Administrators: %d (quorum %d)\n", st.Administrators, st.Required))
	b.WriteString(fmt.Sprintf("Pending requests: %d\n", st.Pending))
	return b.String()
}

// FormatPendingList formats the Pending request queue for display.
func FormatPendingList(reqs []model.TransferRequest, required int) string {
	if len(reqs) == 0 {
		return "✅ No pending transfer requests"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("⏳ <b>Pending requests</b> (%d)\n\n", len(reqs)))
	for _, r := range reqs {
		marker := ""
		if r.Approvals() >= required {
			marker = " ⚠️ quorum met, awaiting funds"
		}
		b.WriteString(fmt.Sprintf("#%d → %s: %s (%d/%d approvals)%s\n",
			r.ID, r.Recipient, amount(r.Amount), r.Approvals(), required, marker))
	}
	return b.String()
}

// FormatSweepReport formats the result of a retry sweep.
func FormatSweepReport(executed []uint64, st engine.VaultStatus) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧹 <b>Sweep executed %d request(s)</b>\n\n", len(executed)))
	for _, id := range executed {
		b.WriteString(fmt.Sprintf("  • request #%d\n", id))
	}
	b.WriteString(fmt.Sprintf("\nBalance: %s | Pending: %d\n", amount(st.Balance), st.Pending))
	return b.String()
}

// FormatDailySummary formats the scheduled daily report.
func FormatDailySummary(st engine.VaultStatus, pending []model.TransferRequest) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>VaultSentinel daily summary</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Balance: %s\n", amount(st.Balance)))
	b.WriteString(fmt.Sprintf("Administrators: %d (quorum %d)\n\n", st.Administrators, st.Required))

	var total uint64
	blocked := 0
	for _, r := range pending {
		total += r.Amount
		if r.Approvals() >= st.Required {
			blocked++
		}
	}
	b.WriteString(fmt.Sprintf("Pending: %d request(s) totalling %s\n", len(pending), amount(total)))
	if blocked > 0 {
		b.WriteString(fmt.Sprintf("⚠️ %d quorum-met request(s) waiting on funds\n", blocked))
	}
	return b.String()
}
