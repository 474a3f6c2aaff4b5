package service

import "election-admin/models"

// TallyReport returns the current counts for the results screen and the
// exporter. Presidents and vice presidents are in identifier order.
func (es *ElectionService) TallyReport() models.TallyReport {
	snapshot := es.candidates.Snapshot()
	return models.TallyReport{
		Presidents:     snapshot.Presidents,
		VicePresidents: snapshot.VicePresidents,
	}
}

// TotalVotes is the number of counted votes, which is the sum of the
// presidential tallies.
func (es *ElectionService) TotalVotes() int {
	var total int
	for _, p := range es.candidates.Snapshot().Presidents {
		total += p.VoteCount
	}
	return total
}
