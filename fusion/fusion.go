package fusion

import (
	"sort"

	"github.com/tabfuse/tabfuse/confidence"
	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

// Engine reconciles the audio and video note streams into one fused
// sequence. Matching is greedy nearest-time, video-driven and
// first-come-first-served; that is an approximation of a minimum-cost
// assignment, kept for compatibility with the detectors' expectations.
type Engine struct {
	AudioWeight   float64
	VideoWeight   float64
	TimeTolerance float64

	scorer *confidence.Scorer
}

func NewEngine(scorer *confidence.Scorer) *Engine {
	return &Engine{
		AudioWeight:   constants.AudioWeight,
		VideoWeight:   constants.VideoWeight,
		TimeTolerance: constants.TimeToleranceSec,
		scorer:        scorer,
	}
}

type matchedPair struct {
	audio model.AudioNote
	video model.VideoNote
}

// Fuse merges the two observation lists into a time-ordered fused
// note list. Unmatched audio notes survive only above a confidence
// floor; unmatched video notes additionally require the played flag,
// a fretted-but-unstruck position must never produce a note.
func (e *Engine) Fuse(audioNotes []model.AudioNote, videoNotes []model.VideoNote,
	audioCtx model.AudioContext, videoCtx model.VideoContext) []model.FusedNote {

	pairs, unmatchedAudio, unmatchedVideo := e.matchByTime(audioNotes, videoNotes)

	var fused []model.FusedNote

	for _, pair := range pairs {
		fused = append(fused, e.fusePair(pair.audio, pair.video, audioCtx, videoCtx))
	}

	for _, audio := range unmatchedAudio {
		audioConf := e.scorer.ScoreAudio(audio, audioCtx)
		if audioConf <= constants.AudioOnlyThreshold {
			continue
		}
		note := noteFromAudio(audio)
		note.Confidence = util.Clamp01(audioConf * e.AudioWeight)
		note.Source = model.SourceAudioOnly
		fused = append(fused, note)
	}

	for _, video := range unmatchedVideo {
		videoConf := e.scorer.ScoreVideo(video, videoCtx)
		if videoConf <= constants.VideoOnlyThreshold || !video.Played {
			continue
		}
		note := noteFromVideo(video)
		note.Confidence = util.Clamp01(videoConf * e.VideoWeight)
		note.Source = model.SourceVideoOnly
		fused = append(fused, note)
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Time < fused[j].Time
	})

	return fused
}

// matchByTime pairs each video note with the closest unused audio
// note within tolerance. Video notes are walked in input order and an
// audio note is consumed by at most one pair.
func (e *Engine) matchByTime(audioNotes []model.AudioNote, videoNotes []model.VideoNote) (
	[]matchedPair, []model.AudioNote, []model.VideoNote) {

	var pairs []matchedPair
	usedAudio := make(map[int]bool)
	usedVideo := make(map[int]bool)

	for videoIdx, video := range videoNotes {
		bestAudioIdx := -1
		minTimeDiff := e.TimeTolerance

		for audioIdx, audio := range audioNotes {
			if usedAudio[audioIdx] {
				continue
			}
			timeDiff := util.Abs(audio.Time - video.Time)
			if timeDiff < minTimeDiff {
				minTimeDiff = timeDiff
				bestAudioIdx = audioIdx
			}
		}

		if bestAudioIdx >= 0 {
			pairs = append(pairs, matchedPair{audio: audioNotes[bestAudioIdx], video: video})
			usedAudio[bestAudioIdx] = true
			usedVideo[videoIdx] = true
		}
	}

	var unmatchedAudio []model.AudioNote
	for i, audio := range audioNotes {
		if !usedAudio[i] {
			unmatchedAudio = append(unmatchedAudio, audio)
		}
	}
	var unmatchedVideo []model.VideoNote
	for i, video := range videoNotes {
		if !usedVideo[i] {
			unmatchedVideo = append(unmatchedVideo, video)
		}
	}

	return pairs, unmatchedAudio, unmatchedVideo
}

// fusePair classifies the pair under one ruling, then applies that
// ruling's merge.
func (e *Engine) fusePair(audio model.AudioNote, video model.VideoNote,
	audioCtx model.AudioContext, videoCtx model.VideoContext) model.FusedNote {

	audioConf := e.scorer.ScoreAudio(audio, audioCtx)
	videoConf := e.scorer.ScoreVideo(video, videoCtx)
	cmp := e.scorer.Compare(audio, video)

	switch classify(cmp) {
	case rulingExact:
		return e.mergeAgreeing(audio, video, audioConf, videoConf, 1.0)
	case rulingOctave:
		return e.resolveOctaveError(audio, video, videoConf)
	case rulingPosition:
		return e.resolvePositionConflict(audio, video, audioConf, videoConf)
	case rulingDisagree:
		return e.resolveDisagreement(audio, video, audioConf, videoConf)
	default:
		return e.mergeAgreeing(audio, video, audioConf, videoConf, cmp.Agreement)
	}
}

func intPtr(v int) *int {
	return &v
}

func noteFromAudio(audio model.AudioNote) model.FusedNote {
	return model.FusedNote{
		Time:       audio.Time,
		Duration:   audio.Duration,
		String:     intPtr(audio.String),
		Fret:       intPtr(audio.Fret),
		Frequency:  audio.Frequency,
		Confidence: audio.Confidence,
	}
}

func noteFromVideo(video model.VideoNote) model.FusedNote {
	return model.FusedNote{
		Time:       video.Time,
		String:     video.String,
		Fret:       video.Fret,
		Confidence: video.Confidence,
		Finger:     video.Finger,
		Strumming:  video.Strumming,
	}
}

// mergeAgreeing merges a pair whose positions agree, or mostly agree,
// weighting confidence by the agreement itself.
func (e *Engine) mergeAgreeing(audio model.AudioNote, video model.VideoNote,
	audioConf float64, videoConf float64, agreement float64) model.FusedNote {

	note := noteFromVideo(video)
	if note.String == nil {
		note.String = intPtr(audio.String)
	}
	if note.Fret == nil {
		note.Fret = intPtr(audio.Fret)
	}
	note.Duration = audio.Duration
	note.Frequency = audio.Frequency

	totalWeight := e.AudioWeight*audioConf + e.VideoWeight*videoConf
	note.Confidence = util.Clamp01(totalWeight * agreement)
	note.Source = model.SourceFused
	note.AudioConfidence = audioConf
	note.VideoConfidence = videoConf
	note.Agreement = agreement

	return note
}

// resolveOctaveError trusts the video position when the audio pitch
// sits one octave away from it, a classic pitch-tracker failure. The
// raw audio frequency is retained for diagnostics.
func (e *Engine) resolveOctaveError(audio model.AudioNote, video model.VideoNote,
	videoConf float64) model.FusedNote {

	note := noteFromVideo(video)
	note.Time = audio.Time
	note.Duration = audio.Duration
	note.Confidence = util.Clamp01(videoConf * e.VideoWeight * constants.OctaveBoost)
	note.Source = model.SourceOctaveCorrected
	note.RawAudioFrequency = audio.Frequency
	note.Corrected = true

	return note
}

// resolvePositionConflict keeps the audio-measured frequency but takes
// the video's fingering when both clearly sound the same pitch.
func (e *Engine) resolvePositionConflict(audio model.AudioNote, video model.VideoNote,
	audioConf float64, videoConf float64) model.FusedNote {

	note := noteFromVideo(video)
	note.Time = audio.Time
	note.Duration = audio.Duration
	note.Frequency = audio.Frequency
	note.Confidence = util.Clamp01(e.AudioWeight*audioConf + e.VideoWeight*videoConf)
	note.Source = model.SourcePositionCorrected
	note.Corrected = true

	return note
}

// resolveDisagreement decides a genuine conflict by confidence: one
// side can dominate outright, otherwise the normalized weighted shares
// pick a winner and the result takes a fixed disagreement penalty.
func (e *Engine) resolveDisagreement(audio model.AudioNote, video model.VideoNote,
	audioConf float64, videoConf float64) model.FusedNote {

	if videoConf > audioConf*constants.DominanceRatio {
		note := noteFromVideo(video)
		note.Confidence = util.Clamp01(videoConf * e.VideoWeight)
		note.Source = model.SourceVideoPriority
		note.AudioConfidence = audioConf
		note.VideoConfidence = videoConf
		note.ConflictResolved = true
		return note
	}

	if audioConf > videoConf*constants.DominanceRatio {
		note := noteFromAudio(audio)
		note.Confidence = util.Clamp01(audioConf * e.AudioWeight)
		note.Source = model.SourceAudioPriority
		note.AudioConfidence = audioConf
		note.VideoConfidence = videoConf
		note.ConflictResolved = true
		if video.String != nil && video.Fret != nil {
			note.AltPosition = &model.Position{String: *video.String, Fret: *video.Fret}
		}
		return note
	}

	totalConf := e.AudioWeight*audioConf + e.VideoWeight*videoConf
	videoShare := (e.VideoWeight * videoConf) / totalConf

	var note model.FusedNote
	if videoShare > constants.VideoShareThreshold {
		note = noteFromVideo(video)
		note.Source = model.SourceVideoWeighted
	} else {
		note = noteFromAudio(audio)
		note.Source = model.SourceAudioWeighted
		if video.String != nil && video.Fret != nil {
			note.AltPosition = &model.Position{String: *video.String, Fret: *video.Fret}
		}
	}
	note.Confidence = util.Clamp01(totalConf * constants.DisagreePenalty)
	note.AudioConfidence = audioConf
	note.VideoConfidence = videoConf
	note.ConflictResolved = true

	return note
}
