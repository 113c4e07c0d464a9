package matching

import "github.com/flagsapp/flags-backend/pkg/db/models"

// ResponseScore computes compatibility from hot take responses in [0,100].
// Each direction checks one user's stances against the other's acceptable
// ranges; the pair score is the mean of both directions. Missing a statement
// the other side flagged as a dealbreaker forces the whole pair to 0. Pairs
// with no overlapping statements score 0.
func ResponseScore(a, b map[string]models.HotTakeResponse) float64 {
	scoreAB, countAB, brokenAB := directionScore(a, b)
	scoreBA, countBA, brokenBA := directionScore(b, a)

	if brokenAB || brokenBA {
		return 0
	}
	if countAB == 0 && countBA == 0 {
		return 0
	}

	return (scoreAB + scoreBA) / 2 * 100
}

// directionScore evaluates rater's stances against target's ranges. It
// returns the mean contribution, the number of statements counted, and
// whether a dealbreaker was missed.
func directionScore(rater, target map[string]models.HotTakeResponse) (float64, int, bool) {
	var sum float64
	var count int
	broken := false

	for takeID, raterResp := range rater {
		if raterResp.UserResponse == nil {
			continue
		}
		targetResp, ok := target[takeID]
		if !ok || targetResp.MatchLow == nil || targetResp.MatchHigh == nil {
			continue
		}

		count++
		stance := *raterResp.UserResponse
		lo, hi := *targetResp.MatchLow, *targetResp.MatchHigh

		if stance >= lo && stance <= hi {
			sum += 1
			continue
		}

		if targetResp.IsDealbreaker {
			broken = true
			continue
		}

		d := lo - stance
		if stance > hi {
			d = stance - hi
		}
		contribution := 1 - float64(d)/4
		if contribution < 0 {
			contribution = 0
		}
		sum += contribution
	}

	if count == 0 {
		return 0, 0, broken
	}
	return sum / float64(count), count, broken
}
