package ip

import (
	"encoding/hex"
	"net"
	"runtime"
)

// IPv4Hex is the first non-loopback IPv4 address of the host, hex encoded.
func IPv4Hex() string {
	if runtime.GOOS == "windows" {
		return "00000000"
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "00000000"
	}

	for _, addr := range addrs {
		if ip, ok := addr.(*net.IPNet); ok && !ip.IP.IsLoopback() {
			if ipv4 := ip.IP.To4(); ipv4 != nil {
				return hex.EncodeToString(ipv4)
			}
		}
	}

	return "00000000"
}
