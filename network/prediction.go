package network

import (
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netsync"
)

const predictionBufferSize = 64

// DeltaRecord stores a sent delta alongside the local position it was sent
// from.
type DeltaRecord struct {
	Sequence  uint32
	Delta     netsync.NetworkDelta
	Predicted gamemath.Vector
}

// PredictionBuffer is a ring buffer of recently sent deltas, used to measure
// how far the local prediction drifted from the server's replay.
type PredictionBuffer struct {
	history [predictionBufferSize]DeltaRecord
	nextSeq uint32
}

// Store saves a sent delta and the position it was sent from.
func (pb *PredictionBuffer) Store(seq uint32, d netsync.NetworkDelta, pos gamemath.Vector) {
	pb.history[seq%predictionBufferSize] = DeltaRecord{
		Sequence:  seq,
		Delta:     d,
		Predicted: pos,
	}
	pb.nextSeq = seq + 1
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (DeltaRecord, bool) {
	record := pb.history[seq%predictionBufferSize]
	if record.Sequence != seq || seq >= pb.nextSeq {
		return DeltaRecord{}, false
	}
	return record, true
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// GetUnacknowledged returns all stored deltas with sequence numbers greater
// than lastAcked that the server has not confirmed yet.
func (pb *PredictionBuffer) GetUnacknowledged(lastAcked uint32) []DeltaRecord {
	var results []DeltaRecord
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if record, ok := pb.Get(seq); ok {
			results = append(results, record)
		}
	}
	return results
}

// PredictionError calculates the distance between the position a delta was
// sent from and where the server put the avatar after replaying it.
func (pb *PredictionBuffer) PredictionError(seq uint32, server gamemath.Vector) float64 {
	record, ok := pb.Get(seq)
	if !ok {
		return 0
	}
	return record.Predicted.Sub(server).Len()
}
