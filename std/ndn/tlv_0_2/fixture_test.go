package tlv_0_2_test

// certificateHex is an NDN certificate whose Content is a SubjectPublicKeyInfo
// with explicit P-256 parameters.
const certificateHex = "" +
	"06fd0211072308014108034b455908082700ee14a8b13304080473656c660809" +
	"fd00000166bce8b874140918010219040036ee8015fd014f3082014b30820103" +
	"06072a8648ce3d02013081f7020101302c06072a8648ce3d0101022100ffffff" +
	"ff00000001000000000000000000000000ffffffffffffffffffffffff305b04" +
	"20ffffffff00000001000000000000000000000000ffffffffffffffffffffff" +
	"fc04205ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27" +
	"d2604b031500c49d360886e704936a6678e1139d26b7819f7e900441046b17d1" +
	"f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c2964fe342" +
	"e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5022100" +
	"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551" +
	"02010103420004664fe3d87b702ff46619e642bfbb50ca5a42b0c556a76f694c" +
	"34b69b74dc5d6fba0b54414ff9c6f276bc0e9040bd6879889ca0dc934d49de54" +
	"222e5e4a27d07416431b01031c14071208014108034b455908082700ee14a8b1" +
	"3304fd00fd26fd00fe0f313937303031303154303030303030fd00ff0f323033" +
	"38313032335432333031303017473045022100ddd03f785af9859ffed83bd05e" +
	"108343319457af0c2e42f4d75d82d6ca89b2b202201c2f78b9158d2ad9c15420" +
	"c889a89c416365dd956909f12a13037b43b2f5e2c4"
