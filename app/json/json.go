package json

import jsoniter "github.com/json-iterator/go"

var (
	// JSON is the codec used for every upstream payload
	JSON = jsoniter.ConfigCompatibleWithStandardLibrary

	Marshal    = JSON.Marshal
	Unmarshal  = JSON.Unmarshal
	NewDecoder = JSON.NewDecoder
	NewEncoder = JSON.NewEncoder
)
