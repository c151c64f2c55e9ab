package promtext

// ValidatorStats carries the per-epoch numeric fields reported for one
// validator identity. All fields are optional; a nil pointer means the field
// was absent from the source data and is skipped entirely. Zero is a real
// observation, never treated as absent.
//
// Field names and JSON tags follow the upstream reporting schema; Epoch and
// Blocks feed the epoch and block_id labels rather than producing metrics of
// their own.
type ValidatorStats struct {
	Epoch                        *uint64 `json:"epoch,omitempty"`
	Blocks                       *uint64 `json:"blocks,omitempty"`
	LeaderRewardReportedLamports *uint64 `json:"leader_reward_reported_lamports,omitempty"`
	PriorityFeesLamports         *uint64 `json:"priority_fees_lamports,omitempty"`
	TransactionFeesTotalLamports *uint64 `json:"transaction_fees_total_lamports,omitempty"`
	TipsLamports                 *uint64 `json:"tips_lamports,omitempty"`
	ComputeUnitsConsumed         *uint64 `json:"compute_units_consumed,omitempty"`
	Votes                        *uint64 `json:"votes,omitempty"`
	NonVotes                     *uint64 `json:"non_votes,omitempty"`
}

// validatorMetrics maps the value-bearing stats fields to their metric name
// and help text. All are gauges.
var validatorMetrics = []struct {
	name string
	help string
	pick func(ValidatorStats) *uint64
}{
	{"leader_reward_reported_lamports", "Reported leader rewards in lamports", func(s ValidatorStats) *uint64 { return s.LeaderRewardReportedLamports }},
	{"priority_fees_lamports", "Priority fees earned in lamports", func(s ValidatorStats) *uint64 { return s.PriorityFeesLamports }},
	{"transaction_fees_total_lamports", "Total transaction fees in lamports", func(s ValidatorStats) *uint64 { return s.TransactionFeesTotalLamports }},
	{"tips_lamports", "Tips received in lamports", func(s ValidatorStats) *uint64 { return s.TipsLamports }},
	{"compute_units_consumed", "Compute units consumed while leader", func(s ValidatorStats) *uint64 { return s.ComputeUnitsConsumed }},
	{"votes", "Vote transactions processed", func(s ValidatorStats) *uint64 { return s.Votes }},
	{"non_votes", "Non-vote transactions processed", func(s ValidatorStats) *uint64 { return s.NonVotes }},
}

// AppendValidatorStats appends one gauge sample per present stats field,
// defining each metric on first use (existing definitions are reused, per
// AppendWithDefine). Every sample shares the chain/network/account labels
// plus epoch and block_id taken from the stats; absent epoch or blocks
// simply drops the corresponding label. This is a scripted consumer of the
// Append primitives and adds no invariants of its own.
func (g *Generator) AppendValidatorStats(stats ValidatorStats, chain, network, account string) error {
	labels := LabelSet{
		{Key: "chain", Value: chain},
		{Key: "network", Value: network},
		{Key: "account", Value: account},
		{Key: "epoch", Value: optionalLabel(stats.Epoch)},
		{Key: "block_id", Value: optionalLabel(stats.Blocks)},
	}
	for _, m := range validatorMetrics {
		v := m.pick(stats)
		if v == nil {
			continue
		}
		if err := g.AppendWithDefine(m.name, m.help, SampleOptions{Labels: labels, Value: *v}); err != nil {
			return err
		}
	}
	return nil
}

// optionalLabel converts an optional field into a label value, mapping a nil
// pointer to the absent sentinel so LabelSet filtering drops the label.
func optionalLabel(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}
