package util

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"golang.org/x/exp/constraints"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Abs[A constraints.Integer | constraints.Float](v A) A {
	if v < 0 {
		return -v
	}
	return v
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

// Clamp01 guards weighted confidence boosts from drifting above 1.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func Mean(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	var total float64
	for _, v := range nums {
		total += v
	}
	return total / float64(len(nums))
}

func CreateBinary(filename string, data any) {
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)

	err := encoder.Encode(data)
	if err != nil {
		panic(err)
	}
	f, err := os.Create(filename)
	if err != nil {
		fmt.Println("Couldn't open file: "+filename, err)
		return
	}
	defer f.Close()

	_, err = f.Write(buf.Bytes())
	if err != nil {
		fmt.Println("Write failed for file: "+filename, err)
	}
}
