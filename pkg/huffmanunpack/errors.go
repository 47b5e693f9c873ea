package huffmanunpack

import "github.com/pkg/errors"

// 디코딩 에러는 전부 종료성(terminal)이라 부분 결과 없이 그대로 반환해요.
var (
	// ErrMalformedHeader: reserved 필드가 0이 아니거나 선언된 길이가 서로 맞지 않음
	ErrMalformedHeader = errors.New("huffmanunpack: malformed header")
	// ErrEmptyAlphabet: symbolCount == 0
	ErrEmptyAlphabet = errors.New("huffmanunpack: empty alphabet")
	// ErrOutOfData: 헤더가 말하는 것보다 버퍼가 짧음
	ErrOutOfData = errors.New("huffmanunpack: out of data")
	// ErrTruncatedStream: 유효 비트를 다 썼는데 코드가 덜 끝남
	ErrTruncatedStream = errors.New("huffmanunpack: truncated stream")
	// ErrLengthMismatch: WithLengthCheck 사용 시 unpackedByteLength와 결과 길이가 다름
	ErrLengthMismatch = errors.New("huffmanunpack: unpacked length mismatch")
)
