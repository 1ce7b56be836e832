package task

import "github.com/glintapp/glint/pkg/store"

// OrderRows arranges active rows for display: high-priority (red) alert
// rows first, other alert rows next, plain checklist rows last. This is a
// stable partition, not a sort — insertion order is preserved within each
// tier.
func OrderRows(tasks []*Task) []*Task {
	var red, alerts, plain []*Task
	for _, t := range tasks {
		switch {
		case t.IsAlert() && t.Priority == store.PriorityHigh:
			red = append(red, t)
		case t.IsAlert():
			alerts = append(alerts, t)
		default:
			plain = append(plain, t)
		}
	}

	out := make([]*Task, 0, len(tasks))
	out = append(out, red...)
	out = append(out, alerts...)
	out = append(out, plain...)
	return out
}
